package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// ErrCircuitOpen is returned when the breaker is rejecting calls for a
// family. It is not retryable: the breaker already knows the backend is
// unhealthy, so burning the retry budget against it is pointless.
var ErrCircuitOpen = errors.New("api: circuit breaker is open")

// CircuitConfig tunes the per-family circuit breaker.
type CircuitConfig struct {
	// FailureThreshold is the consecutive-failure count that opens the circuit.
	FailureThreshold uint32

	// OpenDuration is how long the circuit stays open before probing.
	OpenDuration time.Duration

	// HalfOpenProbes is how many probe requests the half-open state allows.
	HalfOpenProbes uint32
}

// DefaultCircuitConfig returns the standard breaker tuning.
func DefaultCircuitConfig() CircuitConfig {
	return CircuitConfig{
		FailureThreshold: 5,
		OpenDuration:     30 * time.Second,
		HalfOpenProbes:   1,
	}
}

// CircuitBreaker wraps sony/gobreaker's TwoStepCircuitBreaker so the retry
// closure can report outcomes after classification.
type CircuitBreaker struct {
	cb   *gobreaker.TwoStepCircuitBreaker[struct{}]
	name string
}

// NewCircuitBreaker creates a breaker named after the API family.
func NewCircuitBreaker(name string, cfg CircuitConfig, logger *zerolog.Logger) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.HalfOpenProbes,
		Timeout:     cfg.OpenDuration,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger == nil {
				return
			}
			event := logger.Info()
			if to == gobreaker.StateOpen {
				event = logger.Warn()
			}
			event.
				Str("domain", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
		IsSuccessful: func(err error) bool {
			return !ShouldCountAsFailure(err)
		},
	}

	return &CircuitBreaker{
		cb:   gobreaker.NewTwoStepCircuitBreaker[struct{}](settings),
		name: name,
	}
}

// ShouldCountAsFailure determines if an error should count as a circuit
// breaker failure. Only signals of backend ill health count: transport
// failures, 5xx responses, and 429. Client errors (a 404 for a typoed ID,
// a 403 on a missing scope) are the caller's problem and must not lock
// the whole family out.
func ShouldCountAsFailure(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code >= 500 || apiErr.Code == http.StatusTooManyRequests
	}

	// Auth and decode failures are local conditions.
	return false
}

// Allow checks whether a call may proceed. The returned done callback
// records the call's outcome; it must be invoked exactly once.
func (c *CircuitBreaker) Allow() (done func(err error), err error) {
	d, err := c.cb.Allow()
	if err != nil {
		return nil, ErrCircuitOpen
	}
	return d, nil
}

// State returns the current breaker state.
func (c *CircuitBreaker) State() gobreaker.State {
	return c.cb.State()
}

// Name returns the breaker's family name.
func (c *CircuitBreaker) Name() string {
	return c.name
}
