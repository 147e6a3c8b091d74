package appwrite

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error represents an Appwrite API error response
type Error struct {
	// StatusCode is the HTTP status code
	StatusCode int `json:"-"`
	// Code is the numeric code reported in the body (normally equal to StatusCode)
	Code int `json:"code"`
	// Type is the machine-readable error type, e.g. "user_already_exists"
	Type string `json:"type"`
	// Message is a human-readable error message
	Message string `json:"message"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return e.Message
}

// IsUnauthorized returns true if the request lacked a valid session
func (e *Error) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsNotFound returns true if the resource does not exist
func (e *Error) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsConflict returns true if the resource already exists
func (e *Error) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

// parseError parses an error response from the API
func parseError(statusCode int, body []byte) error {
	apiErr := &Error{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err == nil && apiErr.Message != "" {
		return apiErr
	}

	// Fallback to generic error
	msg := string(body)
	if msg == "" {
		msg = http.StatusText(statusCode)
	}
	return &Error{
		StatusCode: statusCode,
		Code:       statusCode,
		Message:    msg,
	}
}

// AsError checks if err is an API error and returns it
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a 401 API error
func IsUnauthorized(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.IsUnauthorized()
}
