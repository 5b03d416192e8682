// Package logging builds zerolog loggers from configuration and tags
// request contexts with correlation IDs.
package logging

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/majidmanzarpour/workspace-cli/internal/config"
)

type ctxKey string

// RequestIDKey is the context key for request IDs.
const RequestIDKey ctxKey = "request_id"

// NewLogger creates a zerolog.Logger from LoggingConfig.
// Returns a configured logger ready for use as global logger.
func NewLogger(cfg config.LoggingConfig) (zerolog.Logger, error) {
	output, outputFile, err := selectOutput(cfg.Output)
	if err != nil {
		return zerolog.Logger{}, err
	}

	if shouldUsePretty(cfg, outputFile) {
		output = buildConsoleWriter(output)
	}

	logger := zerolog.New(output).
		Level(cfg.ParseLevel()).
		With().
		Timestamp().
		Logger()

	return logger, nil
}

// selectOutput returns the output writer and file handle for the given output config.
func selectOutput(outputCfg string) (io.Writer, *os.File, error) {
	switch outputCfg {
	case "", "stderr":
		return os.Stderr, os.Stderr, nil
	case "stdout":
		return os.Stdout, os.Stdout, nil
	default:
		outputCfg = filepath.Clean(outputCfg)
		f, err := os.OpenFile(outputCfg, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, err
		}
		return f, f, nil
	}
}

// shouldUsePretty determines if pretty console output should be used.
func shouldUsePretty(cfg config.LoggingConfig, outputFile *os.File) bool {
	// Explicit Pretty flag always wins
	if cfg.Pretty {
		return true
	}

	switch cfg.Format {
	case "pretty":
		return true
	case "json":
		return false
	default:
		// Auto-detect: use pretty when writing to a terminal
		return outputFile != nil && isatty.IsTerminal(outputFile.Fd())
	}
}

// buildConsoleWriter creates the human-readable writer. zerolog's own
// level coloring is fine; only the time format is tightened.
func buildConsoleWriter(output io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: "15:04:05",
	}
}

// WithRequestID tags the context and its logger with a correlation ID.
// An empty requestID generates a new UUID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = uuid.New().String()
	}

	ctx = context.WithValue(ctx, RequestIDKey, requestID)

	logger := log.Ctx(ctx).With().Str("request_id", requestID).Logger()

	return logger.WithContext(ctx)
}

// RequestID retrieves the request ID from context.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}

	return ""
}
