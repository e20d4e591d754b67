package schema

import "net/http"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var (
	ErrInternal = &Error{
		Code:    http.StatusInternalServerError,
		Message: "an internal error occurred",
	}
	ErrNotFound = &Error{
		Code:    http.StatusNotFound,
		Message: "resource not found",
	}
	ErrMethodNotAllowed = &Error{
		Code:    http.StatusMethodNotAllowed,
		Message: "method not allowed",
	}
	ErrUnauthorized = &Error{
		Code:    http.StatusUnauthorized,
		Message: "unauthorized",
	}
	ErrForbidden = &Error{
		Code:    http.StatusForbidden,
		Message: "you are not authorized to access this resource",
	}
)

// Response represents the unified response envelope sent by the API.
// Successful responses carry Data, failed ones carry Message.
type Response struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Error represents an error that is sent to the client together with its HTTP status code
type Error struct {
	Code    int
	Message string
}

func (err *Error) Error() string {
	return err.Message
}

// NewError creates a new error with the given HTTP status code and message
func NewError(code int, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}
