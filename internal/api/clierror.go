package api

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/sjson"

	"github.com/majidmanzarpour/workspace-cli/internal/ratelimit"
	"github.com/majidmanzarpour/workspace-cli/internal/retry"
)

// ErrorCode classifies terminal failures for structured CLI output.
// The CLI renders these for agent consumption, so codes are stable
// snake_case identifiers.
type ErrorCode string

// Error codes surfaced to the CLI layer.
const (
	CodeAuthenticationFailed ErrorCode = "authentication_failed"
	CodeTokenExpired         ErrorCode = "token_expired"
	CodeRateLimitExceeded    ErrorCode = "rate_limit_exceeded"
	CodeNotFound             ErrorCode = "not_found"
	CodePermissionDenied     ErrorCode = "permission_denied"
	CodeInvalidRequest       ErrorCode = "invalid_request"
	CodeNetworkError         ErrorCode = "network_error"
	CodeServerError          ErrorCode = "server_error"
	CodeConfigurationError   ErrorCode = "configuration_error"
	CodeUnknown              ErrorCode = "unknown"
)

// CLIError is the structured error rendered by the CLI layer.
type CLIError struct {
	Status    string    `json:"status"` // always "error"
	ErrorCode ErrorCode `json:"error_code"`
	Domain    string    `json:"domain"`
	Message   string    `json:"message"`

	// RetryAfterSeconds and ActionableFix are optional; ToJSON appends
	// them only when set.
	RetryAfterSeconds uint   `json:"-"`
	HasRetryAfter     bool   `json:"-"`
	ActionableFix     string `json:"-"`
}

// NewCLIError creates a CLIError with the required fields.
func NewCLIError(code ErrorCode, domain, message string) *CLIError {
	return &CLIError{
		Status:    "error",
		ErrorCode: code,
		Domain:    domain,
		Message:   message,
	}
}

// WithRetry attaches a retry hint in seconds.
func (e *CLIError) WithRetry(seconds uint) *CLIError {
	e.RetryAfterSeconds = seconds
	e.HasRetryAfter = true
	return e
}

// WithFix attaches an actionable remediation hint.
func (e *CLIError) WithFix(fix string) *CLIError {
	e.ActionableFix = fix
	return e
}

// ToJSON renders the error as a single JSON object.
func (e *CLIError) ToJSON() string {
	base, err := json.Marshal(e)
	if err != nil {
		return `{"status":"error","error_code":"unknown","message":"failed to serialize error"}`
	}

	out := string(base)
	if e.HasRetryAfter {
		out, _ = sjson.Set(out, "retry_after_seconds", e.RetryAfterSeconds)
	}
	if e.ActionableFix != "" {
		out, _ = sjson.Set(out, "actionable_fix", e.ActionableFix)
	}
	return out
}

// CLIErrorFrom maps a pipeline error to its CLI rendering. Exhaustion
// unwraps to the last observed failure so the caller sees the original
// cause rather than a generic timeout.
func CLIErrorFrom(err error) *CLIError {
	var exhausted *retry.ExhaustedError
	if errors.As(err, &exhausted) {
		return CLIErrorFrom(exhausted.Err)
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		cliErr := NewCLIError(codeForStatus(apiErr.Code), apiErr.Domain, apiErr.Message)
		if apiErr.HasRetryAfter {
			cliErr.WithRetry(apiErr.RetryAfterSecs)
		}
		return cliErr
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return NewCLIError(CodeAuthenticationFailed, "auth", authErr.Error()).
			WithFix("Run 'workspace-cli auth login' to re-authenticate")
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return NewCLIError(CodeNetworkError, "network", transportErr.Error()).
			WithFix("Check your internet connection and try again")
	}

	var costErr *ratelimit.CostExceedsCapacityError
	if errors.As(err, &costErr) {
		return NewCLIError(CodeConfigurationError, "config", costErr.Error())
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return NewCLIError(CodeUnknown, "serialization", decodeErr.Error())
	}

	return NewCLIError(CodeUnknown, "api", err.Error())
}

// codeForStatus maps HTTP status codes to CLI error codes.
func codeForStatus(status int) ErrorCode {
	switch {
	case status == 401:
		return CodeTokenExpired
	case status == 403:
		return CodePermissionDenied
	case status == 404:
		return CodeNotFound
	case status == 429:
		return CodeRateLimitExceeded
	case status >= 500:
		return CodeServerError
	default:
		return CodeInvalidRequest
	}
}
