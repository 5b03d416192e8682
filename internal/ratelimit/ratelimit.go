// Package ratelimit provides per-API-family admission control for workspace-cli.
//
// Each Google Workspace API family has its own published quota, so every
// family gets one shared ApiRateLimiter: a token bucket for quota units,
// optionally coupled with a concurrency limiter for write-heavy endpoints
// (Drive writes allow at most 3 concurrent operations).
//
// Basic usage:
//
//	limiter := ratelimit.Gmail()
//
//	permit, err := limiter.Acquire(ctx, ratelimit.GmailCostSend)
//	if err != nil {
//		return err
//	}
//	defer ReleaseIfPresent(permit)
//
// All types are safe for concurrent use.
package ratelimit

import "fmt"

// CostExceedsCapacityError is returned when an acquisition cost can never
// be satisfied because it is larger than the bucket's capacity. Waiting
// would loop forever, so the caller gets an immediate failure instead.
type CostExceedsCapacityError struct {
	Cost     int
	Capacity int
}

func (e *CostExceedsCapacityError) Error() string {
	return fmt.Sprintf("ratelimit: operation cost (%d) exceeds bucket capacity (%d)", e.Cost, e.Capacity)
}
