package models

import (
	"errors"
	"fmt"
	"net/http"
)

// APIErrorKind separates failures that never produced an HTTP response from
// failures the backend answered with an error status.
type APIErrorKind string

const (
	// ErrKindNetwork covers connection failures and client-side timeouts.
	// No response was received, so Status is zero.
	ErrKindNetwork APIErrorKind = "network"

	// ErrKindHTTP covers any non-2xx response from the backend.
	ErrKindHTTP APIErrorKind = "http"
)

// APIError is the structured failure every client call returns on error.
// Unauthorized failures additionally evict the local session before this
// error reaches the caller.
type APIError struct {
	Kind         APIErrorKind
	Status       int
	Unauthorized bool
	Message      string
	Body         []byte
	Err          error
}

func (e *APIError) Error() string {
	switch {
	case e.Kind == ErrKindNetwork:
		return fmt.Sprintf("request failed: %v", e.Err)
	case len(e.Message) > 0:
		return fmt.Sprintf("API error: %d - %s", e.Status, e.Message)
	default:
		return fmt.Sprintf("API error: %d - %s", e.Status, http.StatusText(e.Status))
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewNetworkError wraps a transport-level failure.
func NewNetworkError(err error) *APIError {
	return &APIError{Kind: ErrKindNetwork, Err: err}
}

// NewHTTPError wraps a non-2xx response.
func NewHTTPError(status int, message string, body []byte) *APIError {
	return &APIError{
		Kind:         ErrKindHTTP,
		Status:       status,
		Unauthorized: status == http.StatusUnauthorized,
		Message:      message,
		Body:         body,
	}
}

// IsUnauthorized reports whether err is an authorization failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Unauthorized
}

// IsNetworkError reports whether err is a transport failure with no
// backend response. These are safe to retry and never evict the session.
func IsNetworkError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == ErrKindNetwork
}
