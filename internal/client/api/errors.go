package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable marks transport-level failures: the request never
	// produced an HTTP status.
	ErrUnavailable = errors.New("server unavailable")
)

// RequestError is a server-reported failure: any non-2xx response. It
// carries the status code and the server-supplied message from the
// `{"error": "..."}` body, with a generic fallback when absent.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a RequestError with status 401.
func IsUnauthorized(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.StatusCode == http.StatusUnauthorized
}

// ErrorMessage reduces any error from the client to a user-facing string.
// Server-supplied messages pass through verbatim; everything else falls
// back to the provided generic message.
func ErrorMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var re *RequestError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return fallback
}
