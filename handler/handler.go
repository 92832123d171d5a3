package handler

import (
	"errors"
	"net/http"

	"github.com/cardmia/ecgportal/pkg/binder"
)

// HandlerFunc serves one route. req arrives already bound from the path, query,
// JSON body or multipart form, depending on the binders passed to Wrap.
type HandlerFunc[R any] func(ctx Context, req R) Response

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind fills v from r. Returning binder.ErrBinderNotApplicable skips the binder.
type Bind func(r *http.Request, v any) error

// ErrorHandler writes the response for an error raised while binding a request or
// rendering its response.
type ErrorHandler func(ctx Context, err error)

// WrapOption configures Wrap.
type WrapOption func(*route)

type route struct {
	binders []Bind
	onError ErrorHandler
}

// WithBinders appends binders. They run in order against the same request value.
func WithBinders(binders ...Bind) WrapOption {
	return func(rt *route) {
		for _, b := range binders {
			if b != nil {
				rt.binders = append(rt.binders, b)
			}
		}
	}
}

// WithErrorHandler replaces RenderError. Nil is ignored.
func WithErrorHandler(h ErrorHandler) WrapOption {
	return func(rt *route) {
		if h != nil {
			rt.onError = h
		}
	}
}

// RenderError writes the classified error envelope without logging it.
func RenderError(ctx Context, err error) {
	_ = JSONError(ClassifyError(err).HTTPError).Render(ctx.ResponseWriter(), ctx.Request())
}

// Wrap adapts h to net/http.
//
//	r.Post("/api/doctor/upload-reviewed", handler.Wrap(svc.uploadReviewed,
//		handler.WithBinders(binder.Multipart()),
//		handler.WithErrorHandler(handler.NewErrorHandler(log)),
//	))
func Wrap[R any](h HandlerFunc[R], opts ...WrapOption) http.HandlerFunc {
	rt := route{onError: RenderError}
	for _, opt := range opts {
		opt(&rt)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)

		var req R
		if err := rt.bind(r, &req); err != nil {
			rt.onError(ctx, err)
			return
		}

		resp := h(ctx, req)
		if resp == nil {
			rt.onError(ctx, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			rt.onError(ctx, err)
		}
	}
}

func (rt route) bind(r *http.Request, v any) error {
	for _, b := range rt.binders {
		if err := b(r, v); err != nil && !errors.Is(err, binder.ErrBinderNotApplicable) {
			return err
		}
	}
	return nil
}
