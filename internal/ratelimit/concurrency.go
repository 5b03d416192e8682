package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/samber/mo"
	"golang.org/x/sync/semaphore"
)

// ConcurrencyLimiter bounds the number of simultaneous in-flight requests
// for write-heavy endpoints. It issues Permits; releasing a permit returns
// capacity to the pool. A leaked permit permanently shrinks capacity, so
// holders must defer Release on acquisition.
//
// Thread safety: all methods are safe for concurrent use.
type ConcurrencyLimiter struct {
	sem        *semaphore.Weighted
	maxPermits int64
	inFlight   atomic.Int64
}

// NewConcurrencyLimiter creates a pool with the given number of permits.
func NewConcurrencyLimiter(maxPermits int64) *ConcurrencyLimiter {
	return &ConcurrencyLimiter{
		sem:        semaphore.NewWeighted(maxPermits),
		maxPermits: maxPermits,
	}
}

// DriveWriteLimiter allows 3 concurrent Drive write operations.
func DriveWriteLimiter() *ConcurrencyLimiter {
	return NewConcurrencyLimiter(3)
}

// Acquire blocks until a permit is free.
// The caller must release the returned permit, typically via defer.
func (l *ConcurrencyLimiter) Acquire(ctx context.Context) (*Permit, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	l.inFlight.Add(1)
	return &Permit{limiter: l}, nil
}

// TryAcquire returns a permit without blocking, or None when the pool
// is exhausted.
func (l *ConcurrencyLimiter) TryAcquire() mo.Option[*Permit] {
	if !l.sem.TryAcquire(1) {
		return mo.None[*Permit]()
	}
	l.inFlight.Add(1)
	return mo.Some(&Permit{limiter: l})
}

// Available reports the number of free permits.
func (l *ConcurrencyLimiter) Available() int64 {
	return l.maxPermits - l.inFlight.Load()
}

// MaxPermits reports the pool size.
func (l *ConcurrencyLimiter) MaxPermits() int64 {
	return l.maxPermits
}

// Permit represents one unit of concurrency capacity, held for the
// duration of a request. Release is idempotent so that both explicit and
// deferred releases on error paths stay safe.
type Permit struct {
	limiter *ConcurrencyLimiter
	once    sync.Once
}

// Release returns the permit to its pool. Safe to call more than once.
func (p *Permit) Release() {
	p.once.Do(func() {
		p.limiter.inFlight.Add(-1)
		p.limiter.sem.Release(1)
	})
}

// ReleaseIfPresent releases an optional permit. Families without a
// concurrency cap yield None from ApiRateLimiter.Acquire; this keeps the
// caller's defer unconditional.
func ReleaseIfPresent(permit mo.Option[*Permit]) {
	if p, ok := permit.Get(); ok {
		p.Release()
	}
}
