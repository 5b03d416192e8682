package batch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Client issues batch exchanges against one family's batch endpoint.
type Client struct {
	http     *http.Client
	endpoint string
	logger   zerolog.Logger
}

// NewClient creates a batch client for the given endpoint. Batches can be
// large, so the HTTP timeout is much longer than for single calls.
func NewClient(endpoint string) *Client {
	transport := &http.Transport{
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		http: &http.Client{
			Timeout:   120 * time.Second,
			Transport: transport,
		},
		endpoint: endpoint,
		logger:   zerolog.Nop(),
	}
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

// WithEndpoint overrides the batch endpoint, mainly for tests.
func (c *Client) WithEndpoint(endpoint string) *Client {
	c.endpoint = endpoint
	return c
}

// Gmail creates a client for the Gmail batch endpoint.
func Gmail() *Client { return NewClient(EndpointGmail) }

// Drive creates a client for the Drive batch endpoint.
func Drive() *Client { return NewClient(EndpointDrive) }

// Calendar creates a client for the Calendar batch endpoint.
func Calendar() *Client { return NewClient(EndpointCalendar) }

// Chat creates a client for the Chat batch endpoint.
func Chat() *Client { return NewClient(EndpointChat) }

// Execute sends the requests as one multipart exchange and returns the
// per-request results. An empty input yields an empty result without a
// network call; more than MaxRequests is rejected the same way.
func (c *Client) Execute(ctx context.Context, requests []Request, accessToken string) ([]Response, error) {
	if len(requests) == 0 {
		return nil, nil
	}
	if len(requests) > MaxRequests {
		return nil, &TooManyRequestsError{Count: len(requests), Max: MaxRequests}
	}

	boundary := "batch_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	body := buildMultipartBody(requests, boundary)

	c.logger.Debug().
		Str("endpoint", c.endpoint).
		Int("requests", len(requests)).
		Msg("executing batch")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("batch: build request: %w", err)
	}
	req.Header.Set("Content-Type", "multipart/mixed; boundary="+boundary)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("batch: network error: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-side close

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("batch: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{Status: resp.StatusCode, Message: string(respBody)}
	}

	// Without the response boundary the body is unparseable; hard error.
	responseBoundary, ok := extractBoundary(resp.Header.Get("Content-Type"))
	if !ok {
		return nil, &InvalidResponseError{Reason: "missing boundary in response Content-Type"}
	}

	return parseMultipartResponse(string(respBody), responseBoundary), nil
}
