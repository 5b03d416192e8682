package retry

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestBackoff_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	// Property 1: backoff without jitter follows the formula exactly.
	properties.Property("backoff matches min(initial*mult^n, max)", prop.ForAll(
		func(initialMs int, maxMs int, attempt int) bool {
			initial := time.Duration(initialMs) * time.Millisecond
			max := time.Duration(maxMs) * time.Millisecond

			cfg := Config{
				MaxRetries:     attempt + 1,
				InitialBackoff: initial,
				MaxBackoff:     max,
				Multiplier:     2.0,
				Jitter:         false,
			}
			state := NewState(cfg)
			for range attempt {
				state.NextBackoff()
			}

			got, ok := state.NextBackoff()
			if !ok {
				return false
			}

			expected := math.Min(
				initial.Seconds()*math.Pow(2.0, float64(attempt)),
				max.Seconds(),
			)
			return math.Abs(got.Seconds()-expected) < 1e-9
		},
		gen.IntRange(1, 1000),
		gen.IntRange(1000, 60000),
		gen.IntRange(0, 10),
	))

	// Property 2: jittered backoff stays within [0.5, 1.5) of the base.
	properties.Property("jitter stays in range", prop.ForAll(
		func(initialMs int) bool {
			initial := time.Duration(initialMs) * time.Millisecond
			cfg := Config{
				MaxRetries:     1,
				InitialBackoff: initial,
				MaxBackoff:     time.Hour,
				Multiplier:     2.0,
				Jitter:         true,
			}
			got, ok := NewState(cfg).NextBackoff()
			if !ok {
				return false
			}
			return got >= initial/2 && got < initial*3/2
		},
		gen.IntRange(2, 10000),
	))

	// Property 3: the budget allows exactly MaxRetries backoffs.
	properties.Property("budget yields exactly MaxRetries backoffs", prop.ForAll(
		func(maxRetries int) bool {
			cfg := Config{
				MaxRetries:     maxRetries,
				InitialBackoff: time.Millisecond,
				MaxBackoff:     time.Second,
				Multiplier:     2.0,
			}
			state := NewState(cfg)

			granted := 0
			for {
				if _, ok := state.NextBackoff(); !ok {
					break
				}
				granted++
			}
			return granted == maxRetries && state.Attempt() == maxRetries
		},
		gen.IntRange(0, 20),
	))

	properties.TestingRun(t)
}
