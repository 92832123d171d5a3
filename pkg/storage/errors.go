package storage

import "errors"

var (
	ErrInvalidKey     = errors.New("invalid object key") // Empty keys and path traversal
	ErrObjectNotFound = errors.New("object not found")
	ErrEmptyObject    = errors.New("object is empty")

	// Local filesystem errors
	ErrFailedToWriteFile       = errors.New("failed to write file")
	ErrFailedToReadFile        = errors.New("failed to read file")
	ErrFailedToCreateDirectory = errors.New("failed to create directory")
	ErrFailedToReadDirectory   = errors.New("failed to read directory")
	ErrFailedToGetAbsolutePath = errors.New("failed to get absolute path")
	ErrFailedToEncodeMetadata  = errors.New("failed to encode object metadata")

	// S3-specific errors for proper error classification
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrRequestTimeout     = errors.New("request timed out")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
	ErrInvalidObjectState = errors.New("invalid object state")

	// Context and cancellation errors
	ErrOperationTimeout  = errors.New("operation timed out")
	ErrOperationCanceled = errors.New("operation canceled")

	// Configuration errors
	ErrPaginatorNil        = errors.New("paginator factory returned nil")
	ErrPresignerNil        = errors.New("presigner is not configured")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrFailedToLoadConfig  = errors.New("failed to load AWS config")
	ErrUnknownDriver       = errors.New("unknown storage driver")
)
