package api

import (
	"fmt"
	"strconv"
	"time"

	"github.com/majidmanzarpour/workspace-cli/internal/retry"
)

// IsRetryableStatus reports whether an HTTP status code is worth retrying.
// The table is fixed: timeouts, throttling, and server-side failures.
func IsRetryableStatus(code int) bool {
	switch code {
	case 408, // Request Timeout
		429, // Too Many Requests
		500, // Internal Server Error
		502, // Bad Gateway
		503, // Service Unavailable
		504: // Gateway Timeout
		return true
	default:
		return false
	}
}

// ParseRetryAfter parses a Retry-After header value.
// Only the integer-seconds form is accepted; Google APIs return seconds in
// practice, so the HTTP-date form is treated as absent.
func ParseRetryAfter(value string) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}
	secs, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// APIError is a structured error from a Workspace API response.
// Retryability is decided purely by the status code.
type APIError struct {
	// Code is the HTTP status code.
	Code int

	// Message is the human-readable error from the response body.
	Message string

	// Domain names the API family that produced the error.
	Domain string

	// RetryAfterSecs carries the server's Retry-After hint, 0 when absent.
	RetryAfterSecs uint

	// HasRetryAfter reports whether the hint was present.
	HasRetryAfter bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %s: %s", e.Code, e.Domain, e.Message)
}

// IsRetryable implements retry.Retryable via the fixed status table.
func (e *APIError) IsRetryable() bool {
	return IsRetryableStatus(e.Code)
}

// RetryAfter implements retry.Retryable with the server-provided hint.
func (e *APIError) RetryAfter() (time.Duration, bool) {
	if !e.HasRetryAfter {
		return 0, false
	}
	return time.Duration(e.RetryAfterSecs) * time.Second, true
}

// TransportError wraps a network-level failure. Transport failures are
// always retryable.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("api: network error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsRetryable implements retry.Retryable.
func (e *TransportError) IsRetryable() bool { return true }

// RetryAfter implements retry.Retryable; transports carry no hint.
func (e *TransportError) RetryAfter() (time.Duration, bool) { return 0, false }

// DecodeError reports that a 2xx response body did not match the expected
// type. Never retryable: the same bytes would fail again.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("api: decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// AuthError reports a failure to obtain a bearer token.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("api: authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

var (
	_ retry.Retryable = (*APIError)(nil)
	_ retry.Retryable = (*TransportError)(nil)
)
