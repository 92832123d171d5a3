package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cardmia/ecgportal/pkg/binder"
	"github.com/cardmia/ecgportal/pkg/formdata"
	"github.com/cardmia/ecgportal/pkg/logger"
	"github.com/cardmia/ecgportal/pkg/storage"
	"github.com/cardmia/ecgportal/pkg/validator"
)

// ErrorInfo is the classified form of a request error.
type ErrorInfo struct {
	HTTPError
	LogLevel slog.Level
}

func isClientError(status int) bool {
	return status >= http.StatusBadRequest && status < http.StatusInternalServerError
}

func logLevel(status int) slog.Level {
	if isClientError(status) {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// ClassifyError maps an error to the status, code and message sent to the client.
// Errors that carry their own HTTPError win; domain sentinels are mapped next;
// anything else is a 500 with a generic message.
func ClassifyError(err error) ErrorInfo {
	e := classify(err)
	return ErrorInfo{HTTPError: e, LogLevel: logLevel(e.Status)}
}

func classify(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	if ve := validator.FromError(err); ve != nil {
		return HTTPError{Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: ve.Error()}
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return ErrRequestEntityTooLarge
	}

	switch {
	case errors.Is(err, binder.ErrNotMultipart):
		return ErrUnsupportedMediaType.WithMessage("Content-Type must be multipart/form-data")
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return ErrUnsupportedMediaType.WithMessage(err.Error())
	case errors.Is(err, binder.ErrFailedToParseJSON):
		return HTTPError{Status: http.StatusBadRequest, Code: "INVALID_JSON", Message: "Invalid JSON body"}
	case errors.Is(err, binder.ErrFailedToParseQuery), errors.Is(err, binder.ErrFailedToParseForm):
		return ErrBadRequest.WithMessage(err.Error())
	case errors.Is(err, formdata.ErrMalformedBody):
		return HTTPError{Status: http.StatusBadRequest, Code: "MALFORMED_BODY", Message: err.Error()}
	case errors.Is(err, storage.ErrInvalidKey):
		return HTTPError{Status: http.StatusBadRequest, Code: "INVALID_KEY", Message: "Invalid object key"}
	case errors.Is(err, storage.ErrObjectNotFound):
		return HTTPError{Status: http.StatusNotFound, Code: "FILE_NOT_FOUND", Message: "File not found in storage"}
	case errors.Is(err, storage.ErrEmptyObject):
		return HTTPError{Status: http.StatusNotFound, Code: "EMPTY_FILE", Message: "File content is empty or not found"}
	case errors.Is(err, storage.ErrOperationTimeout), errors.Is(err, storage.ErrRequestTimeout),
		errors.Is(err, context.DeadlineExceeded):
		return ErrGatewayTimeout
	}

	return ErrInternal
}

// NewErrorHandler renders errors as JSON envelopes.
// Client errors are logged at WARN, server errors at ERROR.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		info := ClassifyError(err)
		r := ctx.Request()

		log.LogAttrs(ctx, info.LogLevel, "request failed",
			logger.Error(err),
			logger.Status(info.Status),
			slog.String("code", info.Code),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if renderErr := JSONError(info.HTTPError).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.LogAttrs(ctx, slog.LevelError, "failed to render error response",
				logger.Error(renderErr),
				logger.Component("error_handler"),
			)
		}
	}
}
