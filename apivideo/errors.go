package apivideo

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/s0up4200/apivideo/browser"
)

// Common errors
var (
	// ErrSourceNotReadable indicates an upload source that does not exist or is not a file
	ErrSourceNotReadable = errors.New("source file is not readable")
	// ErrSourceEmpty indicates a zero-length upload source
	ErrSourceEmpty = errors.New("source file is empty")
	// ErrMissingName indicates a live stream created without a name
	ErrMissingName = errors.New("live stream name is required")
	// ErrInvalidResponse indicates a response body that could not be decoded
	ErrInvalidResponse = errors.New("invalid response from api.video")
)

// Problem is the problem document api.video returns with error responses
type Problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
	Name   string `json:"name"`
}

// APIError is returned for every non-successful response. It keeps the raw
// response so callers can inspect status, headers and body themselves.
type APIError struct {
	Response *browser.Response
	Problem  Problem
}

func newAPIError(resp *browser.Response) *APIError {
	e := &APIError{Response: resp}
	if resp != nil && len(resp.Body) > 0 {
		// Bodies that are not problem documents leave Problem empty.
		_ = json.Unmarshal(resp.Body, &e.Problem)
	}
	return e
}

// StatusCode returns the HTTP status of the failed response
func (e *APIError) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// Error implements the error interface
func (e *APIError) Error() string {
	msg := e.Problem.Title
	if e.Problem.Detail != "" {
		if msg != "" {
			msg += ": "
		}
		msg += e.Problem.Detail
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode())
	}
	return fmt.Sprintf("api.video API error: status %d: %s", e.StatusCode(), msg)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode() == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode() == http.StatusUnauthorized || e.StatusCode() == http.StatusForbidden
}
