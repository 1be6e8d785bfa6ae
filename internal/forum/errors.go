package forum

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when forum credentials are missing.
var ErrNotConfigured = errors.New("forum client not configured")

// APIError captures a failed forum API call.
type APIError struct {
	Action     string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "forum request failed"
	}
	if e.Action != "" {
		msg = e.Action + ": " + msg
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsAPIError attempts to unwrap an error into an APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
