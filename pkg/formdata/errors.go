package formdata

import "errors"

// ErrMalformedBody is the parent of every structural decoding error.
// Callers map it to a client error; it is never transient.
var ErrMalformedBody = errors.New("malformed multipart body")

// Structural errors. Each matches ErrMalformedBody with errors.Is.
var (
	ErrInvalidBoundary = structural("invalid boundary")
	ErrNoParts         = structural("no multipart parts found")
	ErrInvalidEncoding = structural("invalid body encoding")
)

type structuralError struct{ msg string }

func (e *structuralError) Error() string        { return e.msg }
func (e *structuralError) Is(target error) bool { return target == ErrMalformedBody }

func structural(msg string) error { return &structuralError{msg: msg} }
