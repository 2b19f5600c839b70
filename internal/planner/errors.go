package planner

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyState is returned when the backend answers without a state field.
var ErrEmptyState = errors.New("response is missing refresh state")

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func newHTTPError(status int, body []byte) *HTTPError {
	msg := string(body)
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", status)
	}
	return &HTTPError{StatusCode: status, Message: msg}
}

// IsRetryable reports whether the request may succeed if sent again.
func (e *HTTPError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// IsAuthError reports whether err is a 401 or 403 response.
func IsAuthError(err error) bool {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		return false
	}
	return httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}
