package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// TokenBucket is a quota-unit rate limiter built on golang.org/x/time/rate.
//
// The underlying rate.Limiter performs the refill-then-consume sequence
// under a single critical section, so concurrent callers can never observe
// stale token counts and double-spend a refill. Burst is set to the
// configured capacity and tokens accrue continuously at the refill rate.
//
// Thread safety: all methods are safe for concurrent use.
type TokenBucket struct {
	limiter *rate.Limiter
	config  RateLimitConfig
}

// NewTokenBucket creates a token bucket from the given config.
// The bucket starts full unless the config sets InitialTokens.
func NewTokenBucket(config RateLimitConfig) *TokenBucket {
	limiter := rate.NewLimiter(rate.Limit(config.RefillRate), config.Capacity)

	// rate.NewLimiter starts with a full bucket. Drain the difference when
	// the config asks for fewer starting tokens.
	if initial, ok := config.InitialTokens.Get(); ok && initial < config.Capacity {
		limiter.AllowN(time.Now(), config.Capacity-initial)
	}

	return &TokenBucket{
		limiter: limiter,
		config:  config,
	}
}

// Config returns the immutable config this bucket was built from.
func (b *TokenBucket) Config() RateLimitConfig {
	return b.config
}

// Acquire blocks until cost tokens are available, then deducts them.
//
// A cost larger than the bucket capacity can never be satisfied and fails
// immediately with *CostExceedsCapacityError. Cancelling the context
// releases the waiter and returns the context's error.
func (b *TokenBucket) Acquire(ctx context.Context, cost int) error {
	if cost > b.config.Capacity {
		return &CostExceedsCapacityError{Cost: cost, Capacity: b.config.Capacity}
	}

	if err := b.limiter.WaitN(ctx, cost); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// TryAcquire deducts cost tokens without waiting.
// Returns false when the bucket cannot satisfy the cost right now.
func (b *TokenBucket) TryAcquire(cost int) bool {
	if cost > b.config.Capacity {
		return false
	}
	return b.limiter.AllowN(time.Now(), cost)
}

// Available reports the current post-refill token count for diagnostics.
func (b *TokenBucket) Available() float64 {
	tokens := b.limiter.Tokens()
	if tokens < 0 {
		return 0
	}
	if max := float64(b.config.Capacity); tokens > max {
		return max
	}
	return tokens
}
