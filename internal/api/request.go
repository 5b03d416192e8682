package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/majidmanzarpour/workspace-cli/internal/ratelimit"
	"github.com/majidmanzarpour/workspace-cli/internal/retry"
)

// Get issues a GET request and decodes the response as T.
func Get[T any](ctx context.Context, c *Client, path string, cost int) (T, error) {
	return do[T](ctx, c, http.MethodGet, path, nil, cost)
}

// GetQuery issues a GET request with query parameters.
func GetQuery[T any](ctx context.Context, c *Client, path string, query url.Values, cost int) (T, error) {
	if encoded := query.Encode(); encoded != "" {
		separator := "?"
		if strings.Contains(path, "?") {
			separator = "&"
		}
		path += separator + encoded
	}
	return do[T](ctx, c, http.MethodGet, path, nil, cost)
}

// Post issues a POST request with a JSON body.
func Post[T any](ctx context.Context, c *Client, path string, body any, cost int) (T, error) {
	return do[T](ctx, c, http.MethodPost, path, body, cost)
}

// Put issues a PUT request with a JSON body.
func Put[T any](ctx context.Context, c *Client, path string, body any, cost int) (T, error) {
	return do[T](ctx, c, http.MethodPut, path, body, cost)
}

// Patch issues a PATCH request with a JSON body.
func Patch[T any](ctx context.Context, c *Client, path string, body any, cost int) (T, error) {
	return do[T](ctx, c, http.MethodPatch, path, body, cost)
}

// Delete issues a DELETE request, discarding any response body.
func Delete(ctx context.Context, c *Client, path string, cost int) error {
	_, err := do[json.RawMessage](ctx, c, http.MethodDelete, path, nil, cost)
	return err
}

// do runs one logical call: admission once, then the retry loop over an
// attempt closure that re-authenticates, issues the request, and
// classifies the response.
func do[T any](ctx context.Context, c *Client, method, path string, body any, cost int) (T, error) {
	var zero T

	// Serialization problems are config errors; fail before spending quota.
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("api: encode request body: %w", err)
		}
		payload = encoded
	}

	// Admission governs the logical operation, not each network attempt,
	// so it is acquired once outside the retry loop. The permit (write-
	// capped families only) is held until the call fully completes.
	if c.limiter != nil {
		permit, err := c.limiter.Acquire(ctx, cost)
		if err != nil {
			return zero, err
		}
		defer ratelimit.ReleaseIfPresent(permit)
	}

	requestURL := c.buildURL(path)

	c.logger.Debug().
		Str("method", method).
		Str("url", requestURL).
		Str("domain", c.domain).
		Int("cost", cost).
		Msg("issuing request")

	return retry.Do(ctx, c.retryConfig, func(ctx context.Context) (T, error) {
		return attempt[T](ctx, c, method, requestURL, payload)
	})
}

// attempt performs a single network attempt through the optional circuit
// breaker. The bearer token is re-fetched every time: it may have expired
// while earlier attempts were backing off.
func attempt[T any](ctx context.Context, c *Client, method, requestURL string, payload []byte) (T, error) {
	var zero T

	var done func(err error)
	if c.breaker != nil {
		var err error
		if done, err = c.breaker.Allow(); err != nil {
			return zero, err
		}
	}

	result, err := issue[T](ctx, c, method, requestURL, payload)
	if done != nil {
		done(err)
	}
	return result, err
}

// issue sends the HTTP request and classifies the response.
func issue[T any](ctx context.Context, c *Client, method, requestURL string, payload []byte) (T, error) {
	var zero T

	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return zero, &AuthError{Err: err}
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return zero, fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return zero, &TransportError{Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // read-side close

	return classify[T](c, resp)
}

// classify turns an HTTP response into a decoded value or a typed error.
func classify[T any](c *Client, resp *http.Response) (T, error) {
	var zero T

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, &TransportError{Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return decodeBody[T](respBody)
	}

	apiErr := &APIError{
		Code:    resp.StatusCode,
		Message: "Unknown error",
		Domain:  c.domain,
	}

	if hint, ok := ParseRetryAfter(resp.Header.Get("Retry-After")); ok {
		apiErr.RetryAfterSecs = uint(hint.Seconds())
		apiErr.HasRetryAfter = true
	}

	// Google's structured error body nests the message under error.message.
	if message := gjson.GetBytes(respBody, "error.message"); message.Exists() {
		apiErr.Message = message.String()
	}

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Str("domain", c.domain).
		Str("message", apiErr.Message).
		Bool("retryable", apiErr.IsRetryable()).
		Msg("request failed")

	return zero, apiErr
}

// decodeBody unmarshals a success body into T. Empty bodies (204, empty
// DELETE responses) decode to the zero value.
func decodeBody[T any](body []byte) (T, error) {
	var result T
	if len(body) == 0 {
		return result, nil
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return result, &DecodeError{Err: err}
	}
	return result, nil
}

// buildURL joins a path to the family base URL, normalizing the slash
// between them. Absolute URLs pass through so pagination links from
// response bodies keep working.
func (c *Client) buildURL(path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	return strings.TrimSuffix(c.baseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}
