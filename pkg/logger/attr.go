package logger

import (
	"log/slog"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
// Empty ids produce an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// DoctorID records the doctor identifier under the key "doctor_id".
// Empty ids produce an empty Attr.
func DoctorID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("doctor_id", id)
}

// ObjectKey records a storage key under the key "object_key".
func ObjectKey(key string) slog.Attr {
	return slog.String("object_key", key)
}

// Field records a form field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Filename records an uploaded file name under the key "filename".
func Filename(name string) slog.Attr {
	return slog.String("filename", name)
}

// Size records a payload size in bytes under the key "size".
func Size(n int) slog.Attr {
	return slog.Int("size", n)
}

// Count records a number of items under the key "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// Status records an HTTP status code under the key "status".
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
