package api

import (
	"errors"
	"fmt"
)

// Error is an HTTP-level failure from the backend. Status is zero for
// network errors that never produced a response.
type Error struct {
	Status  int
	Path    string
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Status)
}

// UserMessage maps the failure to a phrase suitable for direct display.
func (e *Error) UserMessage() string {
	switch e.Status {
	case 0:
		return "Network error. Please check your connection."
	case 400:
		if e.Message != "" {
			return e.Message
		}
		return "Invalid request data"
	case 401:
		return "Authentication required"
	case 403:
		return "Access denied"
	case 404:
		return "Resource not found"
	case 429:
		return "Too many requests. Please try again later."
	case 500:
		return "Server error. Please try again later."
	default:
		if e.Message != "" {
			return e.Message
		}
		return "Something went wrong"
	}
}

// UserMessage extracts a displayable message from any error, falling back to
// a generic phrase for non-API failures.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	if err != nil {
		return "An unexpected error occurred"
	}
	return ""
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == 401
}
