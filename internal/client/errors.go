package client

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned whenever the API answered with an error envelope
type APIError struct {
	StatusCode int
	Message    string
}

func (err *APIError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("the API responded with status %d", err.StatusCode)
	}
	return err.Message
}

// NetworkError is returned whenever the API could not be reached or answered with an undecodable response
type NetworkError struct {
	Err error
}

func (err *NetworkError) Error() string {
	return "could not reach the API: " + err.Err.Error()
}

func (err *NetworkError) Unwrap() error {
	return err.Err
}

// IsNotFound reports whether err is an API error caused by a missing resource
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is an API error caused by a missing or rejected bearer token
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
