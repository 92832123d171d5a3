package handler

import (
	"errors"
	"net/http"
)

// ErrNilResponse indicates a handler returned nil instead of a Response.
var ErrNilResponse = errors.New("handler returned nil response")

// HTTPError is an error that knows its status code.
// Code is the machine readable error code placed in the envelope.
type HTTPError struct {
	Status  int
	Code    string
	Message string
}

func (e HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

// WithMessage returns a copy of e carrying a different client-facing message.
func (e HTTPError) WithMessage(msg string) HTTPError {
	e.Message = msg
	return e
}

var (
	ErrBadRequest            = HTTPError{Status: http.StatusBadRequest, Code: "BAD_REQUEST", Message: "Bad request"}
	ErrNotFound              = HTTPError{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "Not found"}
	ErrMethodNotAllowed      = HTTPError{Status: http.StatusMethodNotAllowed, Code: "METHOD_NOT_ALLOWED", Message: "Method not allowed"}
	ErrRequestEntityTooLarge = HTTPError{Status: http.StatusRequestEntityTooLarge, Code: "PAYLOAD_TOO_LARGE", Message: "Request body is too large"}
	ErrUnsupportedMediaType  = HTTPError{Status: http.StatusBadRequest, Code: "UNSUPPORTED_MEDIA_TYPE", Message: "Unsupported content type"}
	ErrGatewayTimeout        = HTTPError{Status: http.StatusGatewayTimeout, Code: "TIMEOUT", Message: "Storage did not respond in time"}
	ErrInternal              = HTTPError{Status: http.StatusInternalServerError, Code: "INTERNAL_ERROR", Message: "Internal server error"}
)
