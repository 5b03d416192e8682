package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestConcurrencyLimiterAcquireRelease(t *testing.T) {
	limiter := NewConcurrencyLimiter(2)

	if got := limiter.MaxPermits(); got != 2 {
		t.Fatalf("MaxPermits() = %d, want 2", got)
	}

	p1, err := limiter.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if got := limiter.Available(); got != 1 {
		t.Errorf("Available() = %d, want 1", got)
	}

	p1.Release()
	if got := limiter.Available(); got != 2 {
		t.Errorf("Available() after release = %d, want 2", got)
	}
}

func TestConcurrencyLimiterBlocksWhenExhausted(t *testing.T) {
	limiter := NewConcurrencyLimiter(2)

	p1, err := limiter.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	p2, err := limiter.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer p2.Release()

	// Third acquire must block until a permit is released.
	acquired := make(chan *Permit, 1)
	go func() {
		p, aerr := limiter.Acquire(context.Background())
		if aerr != nil {
			return
		}
		acquired <- p
	}()

	select {
	case <-acquired:
		t.Fatal("third Acquire() returned while pool was exhausted")
	case <-time.After(50 * time.Millisecond):
	}

	p1.Release()

	select {
	case p := <-acquired:
		p.Release()
	case <-time.After(time.Second):
		t.Fatal("third Acquire() did not return after a permit was released")
	}
}

func TestConcurrencyLimiterTryAcquire(t *testing.T) {
	limiter := NewConcurrencyLimiter(1)

	first := limiter.TryAcquire()
	if first.IsAbsent() {
		t.Fatal("TryAcquire() = None with a fresh pool, want a permit")
	}

	if second := limiter.TryAcquire(); second.IsPresent() {
		t.Error("TryAcquire() returned a permit from an exhausted pool")
	}

	first.MustGet().Release()

	if third := limiter.TryAcquire(); third.IsAbsent() {
		t.Error("TryAcquire() = None after release, want a permit")
	}
}

func TestPermitReleaseIsIdempotent(t *testing.T) {
	limiter := NewConcurrencyLimiter(1)

	p, err := limiter.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	p.Release()
	p.Release() // second release must not over-credit the pool

	if got := limiter.Available(); got != 1 {
		t.Errorf("Available() = %d after double release, want 1", got)
	}
}

func TestConcurrencyLimiterCanceledContext(t *testing.T) {
	limiter := NewConcurrencyLimiter(1)

	p, err := limiter.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer p.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := limiter.Acquire(ctx); err == nil {
		t.Error("Acquire() with canceled context returned nil error")
	}
}
