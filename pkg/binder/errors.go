package binder

import "errors"

var (
	// ErrBinderNotApplicable tells handler.Wrap to skip the binder: the target
	// struct declares no tags this binder fills.
	ErrBinderNotApplicable = errors.New("binder not applicable")

	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrNotMultipart         = errors.New("content type is not multipart/form-data")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrFailedToParseQuery   = errors.New("failed to parse query parameters")
	ErrFailedToParseForm    = errors.New("failed to parse form data")
	ErrInvalidTarget        = errors.New("bind target must be a non-nil pointer to struct")
)
