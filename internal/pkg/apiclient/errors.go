package apiclient

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/pkg/errors"
)

// ErrTimeout is returned when a call exceeds the client timeout.
var ErrTimeout = errors.New("backend request timed out")

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// UserMessage is the text shown next to a form: the backend's msg when it
// sent one, otherwise the status text.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

// AsAPIError unwraps err to an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsTimeout reports whether err is a client timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

func classify(err error, method, path string) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return errors.Wrapf(ErrTimeout, "%s %s", method, path)
	}
	return errors.Wrapf(err, "%s %s", method, path)
}

// Describe turns err into text for the page: the backend's message, a
// timeout notice, or fallback when neither applies.
func Describe(err error, fallback string) string {
	if apiErr, ok := AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	if IsTimeout(err) {
		return "The server took too long to respond. Please try again."
	}
	return fallback
}

// StatusOf is the HTTP status a handler should answer with for err: the
// backend's own 4xx, 504 for a timeout, 502 otherwise.
func StatusOf(err error) int {
	if apiErr, ok := AsAPIError(err); ok && apiErr.Status >= 400 && apiErr.Status < 500 {
		return apiErr.Status
	}
	if IsTimeout(err) {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}
