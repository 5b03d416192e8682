// Package config provides configuration loading and validation for
// workspace-cli.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/majidmanzarpour/workspace-cli/internal/retry"
)

// Configuration errors.
var (
	ErrInvalidLevel = errors.New("config: invalid log level")
)

// Log level constants.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Config is the complete workspace-cli configuration.
type Config struct {
	Auth    AuthConfig             `yaml:"auth" toml:"auth"`
	HTTP    HTTPConfig             `yaml:"http" toml:"http"`
	Logging LoggingConfig          `yaml:"logging" toml:"logging"`
	Retry   map[string]RetryConfig `yaml:"retry" toml:"retry"`
}

// AuthConfig carries the token material handed to the pipeline.
// Tokens are usually supplied as ${WORKSPACE_ACCESS_TOKEN} and expanded
// at load time.
type AuthConfig struct {
	AccessToken string `yaml:"access_token" toml:"access_token"`
}

// HTTPConfig tunes the outbound HTTP clients.
type HTTPConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds" toml:"timeout_seconds"`
}

// Timeout returns the configured timeout, defaulting to 30 seconds.
func (c HTTPConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string `yaml:"level" toml:"level"`

	// Format is json, console, or pretty. Console auto-detects a terminal.
	Format string `yaml:"format" toml:"format"`

	// Output is stdout, stderr, or a file path.
	Output string `yaml:"output" toml:"output"`

	// Pretty forces human-readable output regardless of Format.
	Pretty bool `yaml:"pretty" toml:"pretty"`
}

// ParseLevel converts the configured level to a zerolog level.
// Unknown values fall back to info.
func (c LoggingConfig) ParseLevel() zerolog.Level {
	switch c.Level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelInfo, "":
		return zerolog.InfoLevel
	default:
		return zerolog.InfoLevel
	}
}

// RetryConfig overrides parts of a family's retry preset. Unset fields
// keep the preset's value.
type RetryConfig struct {
	MaxRetries       *int     `yaml:"max_retries" toml:"max_retries"`
	InitialBackoffMS *int     `yaml:"initial_backoff_ms" toml:"initial_backoff_ms"`
	MaxBackoffMS     *int     `yaml:"max_backoff_ms" toml:"max_backoff_ms"`
	Multiplier       *float64 `yaml:"multiplier" toml:"multiplier"`
	Jitter           *bool    `yaml:"jitter" toml:"jitter"`
}

// Apply overlays the override onto a base retry policy.
func (c RetryConfig) Apply(base retry.Config) retry.Config {
	if c.MaxRetries != nil {
		base.MaxRetries = *c.MaxRetries
	}
	if c.InitialBackoffMS != nil {
		base.InitialBackoff = time.Duration(*c.InitialBackoffMS) * time.Millisecond
	}
	if c.MaxBackoffMS != nil {
		base.MaxBackoff = time.Duration(*c.MaxBackoffMS) * time.Millisecond
	}
	if c.Multiplier != nil {
		base.Multiplier = *c.Multiplier
	}
	if c.Jitter != nil {
		base.Jitter = *c.Jitter
	}
	return base
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "", LevelDebug, LevelInfo, LevelWarn, LevelError:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLevel, c.Logging.Level)
	}

	if c.HTTP.TimeoutSeconds < 0 {
		return fmt.Errorf("config: timeout_seconds must be >= 0, got %d", c.HTTP.TimeoutSeconds)
	}

	for family, override := range c.Retry {
		if override.MaxRetries != nil && *override.MaxRetries < 0 {
			return fmt.Errorf("config: retry.%s.max_retries must be >= 0", family)
		}
		if override.Multiplier != nil && *override.Multiplier < 1 {
			return fmt.Errorf("config: retry.%s.multiplier must be >= 1", family)
		}
	}

	return nil
}
