// Package batch packs many logical Workspace API calls into one
// multipart/mixed HTTP exchange and unpacks the multipart response into
// per-request results.
//
// Google's batch endpoints accept up to 100 requests per exchange. The
// batch call bypasses per-request admission control: it is itself
// rate-limited as a single call by the caller.
package batch

import (
	"encoding/json"
	"net/http"
)

// MaxRequests is Google's per-batch request limit.
const MaxRequests = 100

// Batch endpoints per API family.
const (
	EndpointGmail    = "https://gmail.googleapis.com/batch/gmail/v1"
	EndpointDrive    = "https://www.googleapis.com/batch/drive/v3"
	EndpointCalendar = "https://www.googleapis.com/batch/calendar/v3"
	EndpointChat     = "https://chat.googleapis.com/batch"
)

// Request is a single logical call inside a batch. The ID is caller-chosen
// and must be unique within the batch; the response echoes it back.
type Request struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Path   string          `json:"path"`
	Body   json.RawMessage `json:"body,omitempty"`
}

// Get creates a GET batch request.
func Get(id, path string) Request {
	return Request{ID: id, Method: http.MethodGet, Path: path}
}

// Post creates a POST batch request with a JSON body.
func Post(id, path string, body json.RawMessage) Request {
	return Request{ID: id, Method: http.MethodPost, Path: path, Body: body}
}

// Patch creates a PATCH batch request with a JSON body.
func Patch(id, path string, body json.RawMessage) Request {
	return Request{ID: id, Method: http.MethodPatch, Path: path, Body: body}
}

// Delete creates a DELETE batch request.
func Delete(id, path string) Request {
	return Request{ID: id, Method: http.MethodDelete, Path: path}
}

// Header is one name/value pair from an embedded response.
// Order is preserved as received.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Response is the outcome of a single request within a batch.
type Response struct {
	// ID is the echoed request ID with Google's "response-" prefix and
	// angle brackets stripped.
	ID string `json:"id"`

	// Status is the embedded HTTP status code.
	Status int `json:"status"`

	// Headers are the embedded response headers in order.
	Headers []Header `json:"headers,omitempty"`

	// Body is the embedded JSON body; nil when the part carried no
	// parseable JSON.
	Body json.RawMessage `json:"body,omitempty"`
}

// IsSuccess reports whether the embedded status is 2xx.
func (r *Response) IsSuccess() bool {
	return r.Status >= 200 && r.Status < 300
}

// Parse decodes the response body into T.
func Parse[T any](r *Response) (T, error) {
	var result T
	err := json.Unmarshal(r.Body, &result)
	return result, err
}
