package schema

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Writer helps writing unified API responses
type Writer struct {
	InternalErrorHook func(err error)
}

// WriteJSONCode writes the JSON representation of value to the given response writer using the given HTTP status code
func (writer *Writer) WriteJSONCode(rw http.ResponseWriter, code int, value any) {
	val, err := json.Marshal(value)
	if err != nil {
		writer.WriteInternalError(rw, err)
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(code)
	rw.Write(val)
}

// WriteData writes a successful response envelope carrying data.
// This method sends 200 OK as the HTTP status code; use WriteDataCode to use a different one.
func (writer *Writer) WriteData(rw http.ResponseWriter, data any) {
	writer.WriteDataCode(rw, http.StatusOK, data)
}

// WriteDataCode writes a successful response envelope carrying data using the given HTTP status code
func (writer *Writer) WriteDataCode(rw http.ResponseWriter, code int, data any) {
	writer.WriteJSONCode(rw, code, &Response{
		Status: StatusSuccess,
		Data:   data,
	})
}

// WriteErrors sends an error response envelope.
// The HTTP status code of the first error is used; the messages of all errors are joined.
func (writer *Writer) WriteErrors(rw http.ResponseWriter, errors ...*Error) {
	if len(errors) == 0 {
		errors = []*Error{ErrInternal}
	}
	messages := make([]string, 0, len(errors))
	for _, err := range errors {
		messages = append(messages, err.Message)
	}
	writer.WriteJSONCode(rw, errors[0].Code, &Response{
		Status:  StatusError,
		Message: strings.Join(messages, "; "),
	})
}

// WriteInternalError processes an internal server error and writes it to the response
func (writer *Writer) WriteInternalError(rw http.ResponseWriter, err error) {
	if writer.InternalErrorHook != nil {
		writer.InternalErrorHook(err)
	}
	writer.WriteErrors(rw, ErrInternal)
}
