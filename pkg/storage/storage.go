package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Object describes a stored object.
type Object struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the object store used by the report handlers.
type Storage interface {
	// Put writes body under key, replacing any existing object.
	Put(ctx context.Context, key string, body []byte, opts ...PutOption) (*Object, error)
	// Get reads a whole object. Missing keys return ErrObjectNotFound.
	Get(ctx context.Context, key string) ([]byte, *Object, error)
	// List returns every object whose key starts with prefix, across all pages.
	List(ctx context.Context, prefix string) ([]Object, error)
	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) bool
	// URL returns a time-limited download URL for key.
	URL(ctx context.Context, key string) (string, error)
	// Location returns a stable identifier of key in the backend, e.g. "s3://bucket/key".
	Location(key string) string
}

// PutOption configures a single Put call.
type PutOption func(*putOptions)

type putOptions struct {
	contentType string
	metadata    map[string]string
}

// WithContentType sets the stored Content-Type. Defaults to application/octet-stream.
func WithContentType(contentType string) PutOption {
	return func(o *putOptions) {
		if contentType != "" {
			o.contentType = contentType
		}
	}
}

// WithMetadata attaches user metadata to the object. Keys are stored lower-cased.
func WithMetadata(metadata map[string]string) PutOption {
	return func(o *putOptions) {
		for k, v := range metadata {
			o.metadata[strings.ToLower(k)] = v
		}
	}
}

func newPutOptions(opts []PutOption) putOptions {
	o := putOptions{
		contentType: "application/octet-stream",
		metadata:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// cleanKey normalises an object key and rejects keys that could escape a prefix.
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", ErrInvalidKey
	}
	for segment := range strings.SplitSeq(key, "/") {
		if segment == ".." {
			return "", fmt.Errorf("%w: %s", ErrInvalidKey, key)
		}
	}
	return key, nil
}

// cleanPrefix is cleanKey for list prefixes, where an empty prefix means everything.
func cleanPrefix(prefix string) (string, error) {
	prefix = strings.TrimPrefix(prefix, "/")
	if prefix == "" {
		return "", nil
	}
	return cleanKey(prefix)
}
