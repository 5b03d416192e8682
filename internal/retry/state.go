package retry

import (
	"math"
	"math/rand/v2"
	"time"
)

// State tracks the attempt counter for one logical call's retry loop.
// It is bound to a single Config and is not safe for concurrent use;
// every logical call gets its own State.
type State struct {
	config  Config
	attempt int
}

// NewState creates a fresh state at attempt 0.
func NewState(config Config) *State {
	return &State{config: config}
}

// Attempt returns the 0-indexed attempt counter.
func (s *State) Attempt() int {
	return s.attempt
}

// ShouldRetry reports whether the retry budget still has room.
func (s *State) ShouldRetry() bool {
	return s.attempt < s.config.MaxRetries
}

// Advance consumes one attempt from the budget. Used when the server
// supplies an explicit wait hint: the hint replaces the computed backoff
// but does not grant a free retry.
func (s *State) Advance() {
	s.attempt++
}

// NextBackoff computes the delay for the current attempt and advances the
// counter. Returns false when the budget is exhausted.
func (s *State) NextBackoff() (time.Duration, bool) {
	if !s.ShouldRetry() {
		return 0, false
	}
	backoff := s.backoff()
	s.attempt++
	return backoff, true
}

// Reset rewinds the state to attempt 0.
func (s *State) Reset() {
	s.attempt = 0
}

// backoff computes min(initial * multiplier^attempt, max), jittered by a
// uniform factor in [0.5, 1.5) when enabled.
func (s *State) backoff() time.Duration {
	base := s.config.InitialBackoff.Seconds() *
		math.Pow(s.config.Multiplier, float64(s.attempt))

	capped := math.Min(base, s.config.MaxBackoff.Seconds())

	if s.config.Jitter {
		capped *= 0.5 + rand.Float64()
	}

	return time.Duration(capped * float64(time.Second))
}
