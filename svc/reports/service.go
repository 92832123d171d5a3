package reports

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cardmia/ecgportal/handler"
	"github.com/cardmia/ecgportal/pkg/binder"
	"github.com/cardmia/ecgportal/pkg/email"
	"github.com/cardmia/ecgportal/pkg/formdata"
	"github.com/cardmia/ecgportal/pkg/logger"
	"github.com/cardmia/ecgportal/pkg/storage"
)

// Mountable is a service that exposes its routes as an http.Handler.
type Mountable interface {
	Handle() http.Handler
}

// Service serves the doctor report and admin endpoints over one object store.
type Service struct {
	store        storage.Storage
	mailer       email.Sender
	log          *slog.Logger
	errorHandler handler.ErrorHandler

	now          func() time.Time
	newDoctorID  func() string
	portalURL    string
	supportEmail string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces time.Now, which drives key dates and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDoctorIDGenerator replaces NewDoctorID.
func WithDoctorIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newDoctorID = gen
		}
	}
}

// WithInvitationLinks sets the portal and support addresses shown in invitation emails.
func WithInvitationLinks(portalURL, supportEmail string) Option {
	return func(s *Service) {
		s.portalURL = portalURL
		s.supportEmail = supportEmail
	}
}

// NewService creates the report service.
func NewService(store storage.Storage, mailer email.Sender, opts ...Option) *Service {
	s := &Service{
		store:       store,
		mailer:      mailer,
		log:         slog.Default(),
		now:         time.Now,
		newDoctorID: NewDoctorID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("reports"))
	s.errorHandler = handler.NewErrorHandler(s.log)
	return s
}

// Handle returns the router with every report and admin route.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.MethodNotAllowed(s.methodNotAllowed)
	r.NotFound(s.notFound)

	decodeLog := formdata.WithLogger(s.log)

	r.Post("/api/doctor/upload", handler.Wrap(s.upload,
		handler.WithBinders(binder.Multipart(decodeLog)),
		handler.WithErrorHandler(s.errorHandler),
	))
	r.Post("/api/doctor/upload-assigned", handler.Wrap(s.uploadAssigned,
		handler.WithBinders(binder.Multipart(decodeLog)),
		handler.WithErrorHandler(s.errorHandler),
	))
	r.Post("/api/doctor/upload-reviewed", handler.Wrap(s.uploadReviewed,
		handler.WithBinders(binder.Multipart(decodeLog)),
		handler.WithErrorHandler(s.errorHandler),
	))
	r.Get("/api/doctor/reports", handler.Wrap(s.listReports,
		handler.WithBinders(binder.Query()),
		handler.WithErrorHandler(s.errorHandler),
	))
	r.Get("/api/s3-file-content", handler.Wrap(s.fileContent,
		handler.WithBinders(binder.Query()),
		handler.WithErrorHandler(s.errorHandler),
	))

	r.Post("/admin/create-doctor", handler.Wrap(s.createDoctor,
		handler.WithBinders(binder.JSON()),
		handler.WithErrorHandler(s.errorHandler),
	))
	r.Get("/admin/doctor", handler.Wrap(s.listDoctors,
		handler.WithErrorHandler(s.errorHandler),
	))

	return r
}

func (s *Service) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	_ = handler.JSONError(handler.ErrMethodNotAllowed).Render(w, r)
}

func (s *Service) notFound(w http.ResponseWriter, r *http.Request) {
	_ = handler.JSONError(handler.ErrNotFound).Render(w, r)
}

// fail logs err at the level its classification calls for and renders it.
func (s *Service) fail(ctx handler.Context, err error, attrs ...slog.Attr) handler.Response {
	info := handler.ClassifyError(err)
	attrs = append(attrs, logger.Error(err), logger.Status(info.Status), slog.String("code", info.Code))
	s.log.LogAttrs(ctx, info.LogLevel, "request failed", attrs...)
	return handler.JSONError(info.HTTPError)
}

// isoTime formats t in UTC with millisecond precision, e.g. 2025-01-02T03:04:05.000Z.
func isoTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
