package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Retryable is the capability interface error types implement to opt into
// the retry contract. Classification lives on the error, not the driver.
type Retryable interface {
	// IsRetryable reports whether the failure is transient.
	IsRetryable() bool

	// RetryAfter returns an explicit server-provided wait hint, if any.
	RetryAfter() (time.Duration, bool)
}

// IsRetryable classifies an error chain. Errors that do not implement
// Retryable anywhere in the chain are never retried.
func IsRetryable(err error) bool {
	var r Retryable
	if errors.As(err, &r) {
		return r.IsRetryable()
	}
	return false
}

// RetryAfterHint extracts an explicit wait hint from an error chain.
func RetryAfterHint(err error) (time.Duration, bool) {
	var r Retryable
	if errors.As(err, &r) {
		return r.RetryAfter()
	}
	return 0, false
}

// ExhaustedError reports that a retryable operation kept failing after the
// whole retry budget was spent. Attempts is the number of retries consumed
// and Err the last observed failure, preserved for the caller.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retry: max retries (%d) exceeded: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Do invokes op until it succeeds, fails with a non-retryable error, or
// exhausts the retry budget.
//
// Non-retryable errors are returned unchanged, so the caller sees the
// original failure; exhaustion is reported as *ExhaustedError wrapping the
// last error. An explicit RetryAfter hint on the failing error replaces
// the computed backoff but still consumes an attempt. Attempts run
// strictly sequentially; the sleep between them is a real suspension that
// also honors ctx cancellation.
func Do[T any](ctx context.Context, config Config, op func(context.Context) (T, error)) (T, error) {
	var zero T
	state := NewState(config)

	for {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		if !IsRetryable(err) {
			return zero, err
		}

		if !state.ShouldRetry() {
			return zero, &ExhaustedError{Attempts: state.Attempt(), Err: err}
		}

		wait, hinted := RetryAfterHint(err)
		if hinted {
			state.Advance()
		} else {
			wait, _ = state.NextBackoff()
		}

		log.Ctx(ctx).Debug().
			Int("attempt", state.Attempt()).
			Dur("backoff", wait).
			Bool("server_hint", hinted).
			Err(err).
			Msg("retrying after backoff")

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		}
	}
}
