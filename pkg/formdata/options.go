package formdata

import "log/slog"

// DefaultFileField is the field name expected to carry the upload when none is configured.
const DefaultFileField = "file"

// Option configures a single Decode call.
type Option func(*options)

type options struct {
	fileField string
	logger    *slog.Logger
}

// WithFileField sets the field name that carries the uploaded file.
// Empty names are ignored.
func WithFileField(name string) Option {
	return func(o *options) {
		if name != "" {
			o.fileField = name
		}
	}
}

// WithLogger sets the logger used for warnings about ignored and skipped parts.
// Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		fileField: DefaultFileField,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
