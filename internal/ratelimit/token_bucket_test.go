package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewTokenBucketStartsFull(t *testing.T) {
	bucket := NewTokenBucket(NewRateLimitConfig(10, 10.0))

	if got := bucket.Available(); got < 9.5 {
		t.Errorf("Available() = %v, want ~10 for a fresh bucket", got)
	}
}

func TestNewTokenBucketInitialTokens(t *testing.T) {
	bucket := NewTokenBucket(NewRateLimitConfig(100, 1.0).WithInitialTokens(5))

	if got := bucket.Available(); got > 6.5 {
		t.Errorf("Available() = %v, want ~5 with InitialTokens(5)", got)
	}
}

func TestAcquireDeductsTokens(t *testing.T) {
	bucket := NewTokenBucket(NewRateLimitConfig(10, 0.001))

	if err := bucket.Acquire(context.Background(), 4); err != nil {
		t.Fatalf("Acquire(4) error = %v, want nil", err)
	}

	// Refill is negligible at 0.001/sec.
	if got := bucket.Available(); got > 6.5 {
		t.Errorf("Available() = %v, want ~6 after consuming 4 of 10", got)
	}
}

func TestAcquireCostExceedsCapacity(t *testing.T) {
	bucket := NewTokenBucket(NewRateLimitConfig(5, 5.0))

	start := time.Now()
	err := bucket.Acquire(context.Background(), 6)
	elapsed := time.Since(start)

	var costErr *CostExceedsCapacityError
	if !errors.As(err, &costErr) {
		t.Fatalf("Acquire(6) error = %v, want *CostExceedsCapacityError", err)
	}
	if costErr.Cost != 6 || costErr.Capacity != 5 {
		t.Errorf("error = %+v, want Cost=6 Capacity=5", costErr)
	}
	if elapsed > 100*time.Millisecond {
		t.Errorf("Acquire(6) took %v, want immediate failure", elapsed)
	}
}

func TestAcquireWaitsForRefill(t *testing.T) {
	// 20 tokens/sec, bucket drained: acquiring 2 more must take ~100ms.
	bucket := NewTokenBucket(NewRateLimitConfig(10, 20.0).WithInitialTokens(0))

	start := time.Now()
	if err := bucket.Acquire(context.Background(), 2); err != nil {
		t.Fatalf("Acquire(2) error = %v, want nil", err)
	}
	elapsed := time.Since(start)

	if elapsed < 50*time.Millisecond {
		t.Errorf("Acquire(2) returned after %v, want >= ~100ms for refill", elapsed)
	}
}

func TestAcquireCanceledContext(t *testing.T) {
	bucket := NewTokenBucket(NewRateLimitConfig(10, 0.1).WithInitialTokens(0))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := bucket.Acquire(ctx, 5)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Acquire error = %v, want context.DeadlineExceeded", err)
	}
}

func TestTryAcquire(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		refill   float64
		initial  int
		cost     int
		want     bool
	}{
		{
			name:     "enough tokens",
			capacity: 10,
			refill:   1.0,
			initial:  10,
			cost:     10,
			want:     true,
		},
		{
			name:     "not enough tokens",
			capacity: 10,
			refill:   0.001,
			initial:  2,
			cost:     5,
			want:     false,
		},
		{
			name:     "cost exceeds capacity",
			capacity: 5,
			refill:   5.0,
			initial:  5,
			cost:     6,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket := NewTokenBucket(
				NewRateLimitConfig(tt.capacity, tt.refill).WithInitialTokens(tt.initial))

			if got := bucket.TryAcquire(tt.cost); got != tt.want {
				t.Errorf("TryAcquire(%d) = %v, want %v", tt.cost, got, tt.want)
			}
		})
	}
}

func TestAvailableNeverExceedsCapacity(t *testing.T) {
	bucket := NewTokenBucket(NewRateLimitConfig(3, 1000.0))

	time.Sleep(20 * time.Millisecond)

	if got := bucket.Available(); got > 3 {
		t.Errorf("Available() = %v, want <= capacity 3", got)
	}
}
