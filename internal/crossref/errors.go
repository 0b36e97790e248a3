package crossref

import (
	"errors"
	"fmt"
)

// Common errors returned by the crossref package.
var (
	// ErrNetwork indicates the search service could not be reached. It is
	// distinguishable from a lookup miss so callers never mistake an
	// outage for "no such DOI" and corrupt the graph with false negatives.
	ErrNetwork = errors.New("network error communicating with DOI search service")

	// ErrScoreRequired indicates a score was required by configuration
	// but the service returned none. Caller misconfiguration, not a miss.
	ErrScoreRequired = errors.New("search result carries no score but one is required")
)

// APIError represents a non-success response from the search service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("DOI search API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("DOI search API error (status %d)", e.StatusCode)
}

// IsNetworkError reports whether the error indicates a connectivity problem.
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork)
}
