package ratelimit

import "github.com/samber/mo"

// RateLimitConfig describes a token bucket for one API family.
// Instances are immutable once constructed.
type RateLimitConfig struct {
	// Capacity is the maximum number of tokens the bucket can hold.
	Capacity int

	// RefillRate is the number of tokens added per second.
	RefillRate float64

	// InitialTokens overrides the starting token count.
	// When absent the bucket starts full.
	InitialTokens mo.Option[int]
}

// NewRateLimitConfig creates a config with the given capacity and refill rate.
func NewRateLimitConfig(capacity int, refillRate float64) RateLimitConfig {
	return RateLimitConfig{
		Capacity:   capacity,
		RefillRate: refillRate,
	}
}

// WithInitialTokens returns a copy of the config with a starting token count.
func (c RateLimitConfig) WithInitialTokens(n int) RateLimitConfig {
	c.InitialTokens = mo.Some(n)
	return c
}

// Per-family configs encoding Google's published quota numbers.

// GmailConfig allows 250 quota units per second.
func GmailConfig() RateLimitConfig {
	return NewRateLimitConfig(250, 250.0)
}

// DriveConfig allows 200 requests per second (12000/min).
func DriveConfig() RateLimitConfig {
	return NewRateLimitConfig(200, 200.0)
}

// DriveWriteConfig allows 3 write operations per second.
func DriveWriteConfig() RateLimitConfig {
	return NewRateLimitConfig(3, 3.0)
}

// CalendarConfig allows 5 requests per second (500/100sec).
func CalendarConfig() RateLimitConfig {
	return NewRateLimitConfig(5, 5.0)
}

// DocsConfig allows 1 request per second (60/min).
// Shared by the Docs, Sheets, and Slides families, the tightest quotas.
func DocsConfig() RateLimitConfig {
	return NewRateLimitConfig(1, 1.0)
}

// TasksConfig allows a 10-token burst refilled at 0.5/sec.
// Tasks quota is 50000/day (~0.58/sec); stay conservative.
func TasksConfig() RateLimitConfig {
	return NewRateLimitConfig(10, 0.5)
}

// Quota unit costs for Gmail operations. Gmail meters quota units rather
// than requests, so callers pass the cost matching the operation.
const (
	GmailCostList        = 5
	GmailCostGet         = 5
	GmailCostSend        = 100
	GmailCostModify      = 5
	GmailCostDelete      = 10
	GmailCostBatchModify = 50
)

// DefaultCost is the per-request cost for families that meter plain
// request counts instead of quota units.
const DefaultCost = 1
