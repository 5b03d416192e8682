// Package api implements the outbound request pipeline for the Google
// Workspace APIs: per-family admission control, retry with backoff, and
// response classification into typed errors.
//
// A Client represents one API family. Construction couples the family's
// base URL with its published rate limits and retry temperament:
//
//	client := api.Gmail(provider)
//	msg, err := api.Get[Message](ctx, client, "/users/me/messages/"+id, ratelimit.GmailCostGet)
//
// Admission is acquired once per logical call, outside the retry loop; a
// fresh bearer token is fetched on every attempt because tokens may expire
// mid-retry-sequence.
package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/majidmanzarpour/workspace-cli/internal/auth"
	"github.com/majidmanzarpour/workspace-cli/internal/ratelimit"
	"github.com/majidmanzarpour/workspace-cli/internal/retry"
)

// Client issues calls against one Workspace API family.
// Clients are safe for concurrent use and should be shared: the rate
// limiter they carry is the family's process-wide quota state.
type Client struct {
	http        *http.Client
	tokens      auth.TokenProvider
	limiter     *ratelimit.ApiRateLimiter
	breaker     *CircuitBreaker
	retryConfig retry.Config
	baseURL     string
	domain      string
	logger      zerolog.Logger
}

// NewClient creates a bare client with the default HTTP transport tuning
// and retry policy. Family constructors below are the usual entry points.
func NewClient(tokens auth.TokenProvider) *Client {
	transport := &http.Transport{
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		tokens:      tokens,
		retryConfig: retry.DefaultConfig(),
		domain:      "api",
		logger:      zerolog.Nop(),
	}
}

// WithBaseURL sets the family's base URL.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = url
	return c
}

// WithDomain names the API family for error reporting.
func (c *Client) WithDomain(domain string) *Client {
	c.domain = domain
	return c
}

// WithRateLimiter attaches the family's shared admission controller.
func (c *Client) WithRateLimiter(limiter *ratelimit.ApiRateLimiter) *Client {
	c.limiter = limiter
	return c
}

// WithRetryConfig sets the retry policy.
func (c *Client) WithRetryConfig(config retry.Config) *Client {
	c.retryConfig = config
	return c
}

// WithCircuitBreaker attaches a per-family circuit breaker.
func (c *Client) WithCircuitBreaker(breaker *CircuitBreaker) *Client {
	c.breaker = breaker
	return c
}

// WithLogger sets the client's logger.
func (c *Client) WithLogger(logger zerolog.Logger) *Client {
	c.logger = logger
	return c
}

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.http = httpClient
	return c
}

// Domain returns the family name used in error reporting.
func (c *Client) Domain() string {
	return c.domain
}

// RateLimiter returns the attached admission controller, or nil.
func (c *Client) RateLimiter() *ratelimit.ApiRateLimiter {
	return c.limiter
}

// Breaker returns the attached circuit breaker, or nil.
func (c *Client) Breaker() *CircuitBreaker {
	return c.breaker
}

// Gmail creates a client for the Gmail API: 250 quota units/sec,
// conservative retries.
func Gmail(tokens auth.TokenProvider) *Client {
	return NewClient(tokens).
		WithBaseURL(EndpointGmail).
		WithDomain("gmail").
		WithRateLimiter(ratelimit.Gmail()).
		WithRetryConfig(retry.Conservative())
}

// Drive creates a client for the Drive API: 200 req/sec with the
// 3-concurrent write cap, conservative retries.
func Drive(tokens auth.TokenProvider) *Client {
	return NewClient(tokens).
		WithBaseURL(EndpointDrive).
		WithDomain("drive").
		WithRateLimiter(ratelimit.Drive()).
		WithRetryConfig(retry.Conservative())
}

// Calendar creates a client for the Calendar API: 5 req/sec.
func Calendar(tokens auth.TokenProvider) *Client {
	return NewClient(tokens).
		WithBaseURL(EndpointCalendar).
		WithDomain("calendar").
		WithRateLimiter(ratelimit.Calendar())
}

// Docs creates a client for the Docs API: 1 req/sec, aggressive retries
// because the quota is the most punitive.
func Docs(tokens auth.TokenProvider) *Client {
	return NewClient(tokens).
		WithBaseURL(EndpointDocs).
		WithDomain("docs").
		WithRateLimiter(ratelimit.Docs()).
		WithRetryConfig(retry.Aggressive())
}

// Sheets creates a client for the Sheets API, sharing the Docs quota class.
func Sheets(tokens auth.TokenProvider) *Client {
	return NewClient(tokens).
		WithBaseURL(EndpointSheets).
		WithDomain("sheets").
		WithRateLimiter(ratelimit.Docs()).
		WithRetryConfig(retry.Aggressive())
}

// Slides creates a client for the Slides API, sharing the Docs quota class.
func Slides(tokens auth.TokenProvider) *Client {
	return NewClient(tokens).
		WithBaseURL(EndpointSlides).
		WithDomain("slides").
		WithRateLimiter(ratelimit.Docs()).
		WithRetryConfig(retry.Aggressive())
}

// Tasks creates a client for the Tasks API: conservative 0.5 req/sec.
func Tasks(tokens auth.TokenProvider) *Client {
	return NewClient(tokens).
		WithBaseURL(EndpointTasks).
		WithDomain("tasks").
		WithRateLimiter(ratelimit.Tasks())
}

// Chat creates a client for the Google Chat API.
func Chat(tokens auth.TokenProvider) *Client {
	return NewClient(tokens).
		WithBaseURL(EndpointChat).
		WithDomain("chat").
		WithRateLimiter(ratelimit.Tasks())
}

// Contacts creates a client for the People API.
func Contacts(tokens auth.TokenProvider) *Client {
	return NewClient(tokens).
		WithBaseURL(EndpointContacts).
		WithDomain("contacts").
		WithRateLimiter(ratelimit.Tasks())
}

// Groups creates a client for the Cloud Identity Groups API.
func Groups(tokens auth.TokenProvider) *Client {
	return NewClient(tokens).
		WithBaseURL(EndpointGroups).
		WithDomain("groups").
		WithRateLimiter(ratelimit.Tasks())
}

// Admin creates a client for the Admin Directory API.
func Admin(tokens auth.TokenProvider) *Client {
	return NewClient(tokens).
		WithBaseURL(EndpointAdmin).
		WithDomain("admin").
		WithRateLimiter(ratelimit.Tasks())
}
