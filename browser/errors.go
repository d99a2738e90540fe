package browser

import (
	"errors"
	"fmt"
)

// Common errors returned by the browser.
var (
	// ErrMissingAPIKey is returned when no API key is configured.
	ErrMissingAPIKey = errors.New("api.video API key is required")

	// errRetryableStatus marks a response whose status code may be retried.
	errRetryableStatus = errors.New("retryable status")
)

// AuthError is returned when the API key or refresh token is rejected.
type AuthError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return fmt.Sprintf("api.video authentication failed: status %d: %s", e.StatusCode, e.Body)
}
