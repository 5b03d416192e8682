// Package retry provides a generic retry driver with exponential backoff
// for workspace-cli API calls.
//
// Error classification is supplied by the error types themselves through
// the Retryable interface, so new error sources opt into the retry
// contract without the driver changing. Each Google API family carries a
// preset reflecting how punitive its rate limiting is: Conservative for
// high-volume families (Gmail, Drive), Aggressive for the tightly limited
// document families (Docs, Sheets, Slides).
package retry

import "time"

// Config controls the retry loop and backoff curve.
type Config struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int

	// InitialBackoff is the delay before the first retry.
	InitialBackoff time.Duration

	// MaxBackoff caps the computed backoff.
	MaxBackoff time.Duration

	// Multiplier grows the backoff per attempt, typically 2.0.
	Multiplier float64

	// Jitter randomizes each delay by a factor in [0.5, 1.5) to avoid
	// thundering herds.
	Jitter bool
}

// DefaultConfig returns the baseline retry policy.
func DefaultConfig() Config {
	return Config{
		MaxRetries:     3,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     30 * time.Second,
		Multiplier:     2.0,
		Jitter:         true,
	}
}

// Aggressive returns the policy for heavily rate-limited families
// (Docs, Sheets, Slides): more retries with longer waits.
func Aggressive() Config {
	return Config{
		MaxRetries:     5,
		InitialBackoff: time.Second,
		MaxBackoff:     60 * time.Second,
		Multiplier:     2.0,
		Jitter:         true,
	}
}

// Conservative returns the policy for high-volume families (Gmail, Drive)
// where quota recovers quickly.
func Conservative() Config {
	return Config{
		MaxRetries:     3,
		InitialBackoff: 200 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
		Multiplier:     2.0,
		Jitter:         true,
	}
}

// WithMaxRetries returns a copy with the retry budget replaced.
func (c Config) WithMaxRetries(n int) Config {
	c.MaxRetries = n
	return c
}

// WithInitialBackoff returns a copy with the initial backoff replaced.
func (c Config) WithInitialBackoff(d time.Duration) Config {
	c.InitialBackoff = d
	return c
}

// WithMaxBackoff returns a copy with the backoff cap replaced.
func (c Config) WithMaxBackoff(d time.Duration) Config {
	c.MaxBackoff = d
	return c
}

// WithMultiplier returns a copy with the growth factor replaced.
func (c Config) WithMultiplier(m float64) Config {
	c.Multiplier = m
	return c
}

// WithJitter returns a copy with jitter toggled.
func (c Config) WithJitter(jitter bool) Config {
	c.Jitter = jitter
	return c
}
