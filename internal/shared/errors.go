package shared

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrMissingToken     = fmt.Errorf("missing session token")

	// Remote call errors
	ErrTimeout           = fmt.Errorf("operation timed out")
	ErrNetwork           = fmt.Errorf("network error")
	ErrMalformedResponse = fmt.Errorf("malformed response")
	ErrRateLimited       = fmt.Errorf("rate limited")

	// Service errors
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

// HTTPError reports a non-2xx response from a remote endpoint.
type HTTPError struct {
	Status int
	Path   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Path, e.Status)
}

// IsTimeout reports whether err is a per-call deadline expiry.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded)
}

// IsCancelled reports whether err is a caller-initiated cancellation (teardown).
// Cancellation is expected during shutdown and never treated as a failure.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsAuthRejected reports whether err is an HTTP 401 or 403 response.
func IsAuthRejected(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status == 401 || httpErr.Status == 403
	}
	return false
}

// HTTPStatus extracts the status code from an [HTTPError] in err's chain, or 0.
func HTTPStatus(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return 0
}
