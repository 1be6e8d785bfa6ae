package feed

import (
	"errors"
	"fmt"
)

// ErrFeedUnavailable is returned when no feed client is configured.
var ErrFeedUnavailable = errors.New("feed unavailable")

// UpstreamError captures a non-success response from the feed.
type UpstreamError struct {
	Feed       string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "feed request failed"
	}
	if e.Feed != "" {
		msg = e.Feed + ": " + msg
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsUpstreamError attempts to unwrap an error into an UpstreamError.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr, true
	}
	return nil, false
}
