package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Transport-variant messages for failures with no HTTP response.
const (
	MsgTimeout     = "The request timed out. Please check your network connection."
	MsgNetwork     = "Network connection failed. Please check your internet connection."
	MsgUnreachable = "Cannot reach the server. Please try again later."
	MsgUnknown     = "An unknown error occurred."
)

var statusMessages = map[int]string{
	http.StatusBadRequest:          "Invalid request. Please check your input.",
	http.StatusUnauthorized:        "Authentication required. Please sign in again.",
	http.StatusForbidden:           "You do not have permission to perform this action.",
	http.StatusNotFound:            "The requested resource could not be found.",
	http.StatusConflict:            "The data already exists.",
	http.StatusUnprocessableEntity: "Please check your input.",
	http.StatusInternalServerError: "A server error occurred. Please try again later.",
	http.StatusServiceUnavailable:  "The service is temporarily unavailable. Please try again later.",
}

// Message derives the single user-facing message for any failure raised by
// the API client. Precedence: the server-supplied message in the error
// payload, then a fixed message keyed by HTTP status, then a transport
// variant, then a generic fallback.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if msg, ok := statusMessages[apiErr.Status]; ok {
			return msg
		}
		return fmt.Sprintf("An error occurred. (%d)", apiErr.Status)
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		switch netErr.Kind {
		case NetworkKindTimeout:
			return MsgTimeout
		case NetworkKindUnreachable:
			return MsgUnreachable
		default:
			return MsgNetwork
		}
	}

	if err != nil && err.Error() != "" {
		return err.Error()
	}

	return MsgUnknown
}

// IsNetworkError reports whether the failure produced no HTTP response.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsRetryable reports whether the failure is transient: any no-response
// transport failure or a 5xx status. 4xx responses are never retryable.
func IsRetryable(err error) bool {
	if IsNetworkError(err) {
		return true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500 && apiErr.Status < 600
	}

	return false
}
