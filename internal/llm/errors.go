package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrNoAPIKey is returned before any network call is attempted.
	ErrNoAPIKey = errors.New("llm api key is not configured")

	// ErrUpstreamTimeout is returned when the provider call exceeds the
	// client's wall-clock timeout.
	ErrUpstreamTimeout = errors.New("llm provider request timed out")
)

// UpstreamError is returned when the provider responds with a non-success
// status. It carries the raw status code and response body.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("llm provider returned status %d: %s", e.Status, e.Body)
}
