package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrItemNotFound indicates the requested drive item does not exist
	ErrItemNotFound = errors.New("drive item not found")

	// ErrServerOffline indicates the media store is unreachable
	ErrServerOffline = errors.New("media store is unreachable")

	// ErrAuthFailed indicates the access token was rejected
	ErrAuthFailed = errors.New("access token is invalid or expired")

	// ErrMissingThumbnails indicates an item came back without a usable thumbnail set
	ErrMissingThumbnails = errors.New("missing thumbnails")

	// ErrNotMedia indicates the item is neither an image nor a video
	ErrNotMedia = errors.New("item is not an image or video")
)

// StatusError is returned when the media store answers with a non-success status.
// Body holds the response text so it can be shown to the user as-is.
type StatusError struct {
	Code int
	Body string
	Err  error // optional sentinel (ErrAuthFailed, ErrItemNotFound)
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("unexpected status code: %d", e.Code)
	}
	return fmt.Sprintf("unexpected status code: %d: %s", e.Code, body)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// ResponseBody returns the body text of a StatusError anywhere in err's chain.
func ResponseBody(err error) (string, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Body, true
	}
	return "", false
}
