package crossref

import (
	"errors"
	"fmt"
)

// Common errors returned by the resolver client.
var (
	// ErrNotFound indicates the DOI is not registered.
	ErrNotFound = errors.New("DOI not found")

	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("resolver rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with resolver")

	// ErrInvalidResponse indicates an unexpected resolver response.
	ErrInvalidResponse = errors.New("invalid response from resolver")
)

// APIError represents an unexpected HTTP status from the resolver.
type APIError struct {
	StatusCode int
	DOI        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("resolver error (status %d) for %s", e.StatusCode, e.DOI)
}

// IsNotFound returns true if the error indicates an unregistered DOI.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}
