package batch

import "fmt"

// Batch failures are never retryable: they are either caller mistakes
// (too many requests) or responses the client cannot interpret.

// TooManyRequestsError reports a batch exceeding MaxRequests.
// Raised before any network call is attempted.
type TooManyRequestsError struct {
	Count int
	Max   int
}

func (e *TooManyRequestsError) Error() string {
	return fmt.Sprintf("batch: too many requests: %d (max: %d)", e.Count, e.Max)
}

// HTTPError reports a non-2xx status on the batch exchange itself.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("batch: HTTP error %d: %s", e.Status, e.Message)
}

// InvalidResponseError reports a multipart response that cannot be parsed,
// such as a missing boundary parameter.
type InvalidResponseError struct {
	Reason string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("batch: invalid response: %s", e.Reason)
}
