package scholar

import (
	"errors"
	"fmt"
)

// Errors returned by the Semantic Scholar client.
var (
	// ErrNotFound indicates the author does not exist.
	ErrNotFound = errors.New("not found in Semantic Scholar")

	// ErrRateLimited indicates the API refused the request with 429.
	ErrRateLimited = errors.New("semantic scholar rate limit exceeded")

	// ErrAuthError indicates a rejected API key.
	ErrAuthError = errors.New("semantic scholar authentication error")

	// ErrMissingAuthorID is returned by Sync without an author ID.
	ErrMissingAuthorID = errors.New("author ID is required")
)

// APIError is a non-2xx response that maps to no sentinel.
type APIError struct {
	StatusCode int
	Message    string
	Path       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("semantic scholar API error (status %d) on %s: %s", e.StatusCode, e.Path, e.Message)
}

// IsNotFound reports whether err indicates a missing resource.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

// IsRateLimited reports whether err indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 429
}
