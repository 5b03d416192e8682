package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"github.com/majidmanzarpour/workspace-cli/internal/ratelimit"
	"github.com/majidmanzarpour/workspace-cli/internal/retry"
)

func TestCLIErrorFromAPIError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantCode ErrorCode
	}{
		{"401 maps to token expired", 401, CodeTokenExpired},
		{"403 maps to permission denied", 403, CodePermissionDenied},
		{"404 maps to not found", 404, CodeNotFound},
		{"429 maps to rate limit", 429, CodeRateLimitExceeded},
		{"500 maps to server error", 500, CodeServerError},
		{"503 maps to server error", 503, CodeServerError},
		{"400 maps to invalid request", 400, CodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cliErr := CLIErrorFrom(&APIError{Code: tt.status, Message: "m", Domain: "gmail"})
			assert.Equal(t, tt.wantCode, cliErr.ErrorCode)
			assert.Equal(t, "gmail", cliErr.Domain)
		})
	}
}

func TestCLIErrorFromExhaustionUnwrapsLastError(t *testing.T) {
	inner := &APIError{Code: 429, Message: "Quota exceeded", Domain: "docs",
		RetryAfterSecs: 42, HasRetryAfter: true}
	err := &retry.ExhaustedError{Attempts: 5, Err: inner}

	cliErr := CLIErrorFrom(err)
	assert.Equal(t, CodeRateLimitExceeded, cliErr.ErrorCode)
	assert.Equal(t, "docs", cliErr.Domain)
	assert.Equal(t, "Quota exceeded", cliErr.Message)
	assert.True(t, cliErr.HasRetryAfter)
	assert.Equal(t, uint(42), cliErr.RetryAfterSeconds)
}

func TestCLIErrorFromAuthError(t *testing.T) {
	cliErr := CLIErrorFrom(&AuthError{Err: errors.New("no refresh token")})
	assert.Equal(t, CodeAuthenticationFailed, cliErr.ErrorCode)
	assert.Contains(t, cliErr.ActionableFix, "auth login")
}

func TestCLIErrorFromTransportError(t *testing.T) {
	cliErr := CLIErrorFrom(&TransportError{Err: errors.New("connection refused")})
	assert.Equal(t, CodeNetworkError, cliErr.ErrorCode)
	assert.NotEmpty(t, cliErr.ActionableFix)
}

func TestCLIErrorFromCostError(t *testing.T) {
	cliErr := CLIErrorFrom(&ratelimit.CostExceedsCapacityError{Cost: 500, Capacity: 250})
	assert.Equal(t, CodeConfigurationError, cliErr.ErrorCode)
}

func TestCLIErrorFromUnknown(t *testing.T) {
	cliErr := CLIErrorFrom(errors.New("mystery"))
	assert.Equal(t, CodeUnknown, cliErr.ErrorCode)
}

func TestCLIErrorToJSON(t *testing.T) {
	out := NewCLIError(CodeRateLimitExceeded, "gmail", "Quota exceeded").
		WithRetry(30).
		WithFix("Wait and retry").
		ToJSON()

	assert.Equal(t, "error", gjson.Get(out, "status").String())
	assert.Equal(t, "rate_limit_exceeded", gjson.Get(out, "error_code").String())
	assert.Equal(t, int64(30), gjson.Get(out, "retry_after_seconds").Int())
	assert.Equal(t, "Wait and retry", gjson.Get(out, "actionable_fix").String())
}

func TestCLIErrorToJSONOmitsOptionalFields(t *testing.T) {
	out := NewCLIError(CodeNotFound, "drive", "File not found").ToJSON()

	assert.False(t, gjson.Get(out, "retry_after_seconds").Exists())
	assert.False(t, gjson.Get(out, "actionable_fix").Exists())
}
