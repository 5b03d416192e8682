package ratelimit

import (
	"context"

	"github.com/samber/mo"
)

// ApiRateLimiter couples one token bucket with an optional concurrency
// limiter for a single API family. All calls targeting that family share
// one instance for the process lifetime.
type ApiRateLimiter struct {
	bucket      *TokenBucket
	concurrency *ConcurrencyLimiter
}

// NewApiRateLimiter creates a limiter with no concurrency cap.
func NewApiRateLimiter(config RateLimitConfig) *ApiRateLimiter {
	return &ApiRateLimiter{
		bucket: NewTokenBucket(config),
	}
}

// WithConcurrency attaches a concurrency limiter and returns the receiver
// for chaining during construction.
func (l *ApiRateLimiter) WithConcurrency(limiter *ConcurrencyLimiter) *ApiRateLimiter {
	l.concurrency = limiter
	return l
}

// Acquire waits for cost quota tokens and then, when the family carries a
// concurrency cap, for a permit. The permit is returned for the caller to
// hold for the request's duration; families without a cap yield None.
func (l *ApiRateLimiter) Acquire(ctx context.Context, cost int) (mo.Option[*Permit], error) {
	if err := l.bucket.Acquire(ctx, cost); err != nil {
		return mo.None[*Permit](), err
	}

	if l.concurrency == nil {
		return mo.None[*Permit](), nil
	}

	permit, err := l.concurrency.Acquire(ctx)
	if err != nil {
		return mo.None[*Permit](), err
	}
	return mo.Some(permit), nil
}

// Bucket exposes the underlying token bucket for diagnostics.
func (l *ApiRateLimiter) Bucket() *TokenBucket {
	return l.bucket
}

// Concurrency exposes the optional concurrency limiter, or nil.
func (l *ApiRateLimiter) Concurrency() *ConcurrencyLimiter {
	return l.concurrency
}

// Gmail returns the shared-quota limiter for the Gmail family.
func Gmail() *ApiRateLimiter {
	return NewApiRateLimiter(GmailConfig())
}

// Drive returns the Drive limiter with the 3-concurrent write cap.
func Drive() *ApiRateLimiter {
	return NewApiRateLimiter(DriveConfig()).
		WithConcurrency(DriveWriteLimiter())
}

// Calendar returns the Calendar family limiter.
func Calendar() *ApiRateLimiter {
	return NewApiRateLimiter(CalendarConfig())
}

// Docs returns the limiter shared by the Docs, Sheets, and Slides families.
func Docs() *ApiRateLimiter {
	return NewApiRateLimiter(DocsConfig())
}

// Tasks returns the conservative limiter used for Tasks and the other
// low-volume families (Chat, Contacts, Groups, Admin).
func Tasks() *ApiRateLimiter {
	return NewApiRateLimiter(TasksConfig())
}
