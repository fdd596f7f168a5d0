// Package apierr defines the typed failures the API client surfaces and
// their translation into user-facing messages.
package apierr

import (
	"fmt"
	"time"
)

// ErrorPayload is the backend's error response body.
type ErrorPayload struct {
	ErrorCode string     `json:"errorCode"`
	Message   string     `json:"message"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Path      string     `json:"path,omitempty"`
}

// APIError is a non-2xx response from the backend. Code and Message come
// from the error payload and may be empty when the body was absent or
// unparseable.
type APIError struct {
	Status  int
	Code    string
	Message string
	parent  error
}

// NewAPIError builds an APIError from a status code and decoded payload.
func NewAPIError(status int, payload ErrorPayload) *APIError {
	return &APIError{
		Status:  status,
		Code:    payload.ErrorCode,
		Message: payload.Message,
	}
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error: status=%d code=%s msg=%s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error: status=%d", e.Status)
}

// WrapParent attaches an underlying error to the APIError.
func (e *APIError) WrapParent(parent error) *APIError {
	e.parent = parent
	return e
}

func (e *APIError) Unwrap() error {
	return e.parent
}

// NetworkKind distinguishes no-response transport failures.
type NetworkKind uint8

const (
	// NetworkKindFailure is a generic transport failure.
	NetworkKindFailure NetworkKind = iota
	// NetworkKindTimeout means the request-level timeout elapsed.
	NetworkKindTimeout
	// NetworkKindUnreachable means the server could not be reached at all
	// (connection refused, no route, DNS failure).
	NetworkKindUnreachable
)

func (k NetworkKind) String() string {
	switch k {
	case NetworkKindTimeout:
		return "timeout"
	case NetworkKindUnreachable:
		return "unreachable"
	default:
		return "failure"
	}
}

// NetworkError is a transport failure with no HTTP response.
type NetworkError struct {
	Kind   NetworkKind
	parent error
}

// NewNetworkError builds a NetworkError wrapping the transport failure.
func NewNetworkError(kind NetworkKind, parent error) *NetworkError {
	return &NetworkError{Kind: kind, parent: parent}
}

func (e *NetworkError) Error() string {
	if e.parent != nil {
		return fmt.Sprintf("network error (%s): %v", e.Kind, e.parent)
	}
	return fmt.Sprintf("network error (%s)", e.Kind)
}

func (e *NetworkError) Unwrap() error {
	return e.parent
}
