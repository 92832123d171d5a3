package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cardmia/ecgportal/handler"
	"github.com/cardmia/ecgportal/pkg/httpserver"
	"github.com/cardmia/ecgportal/pkg/requestid"
	"github.com/cardmia/ecgportal/pkg/storage"
	"github.com/cardmia/ecgportal/svc/reports"
)

// readinessPrefix is listed by the storage readiness probe. It is normally empty,
// so the probe costs a single list request.
const readinessPrefix = "healthz/"

func newRouter(cfg appConfig, log *slog.Logger, store storage.Storage, svc reports.Mountable) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(handler.CORS(cfg.CORS))
	r.Use(limitBody(cfg.MaxUploadBytes))

	r.Get("/healthz", httpserver.HealthCheckHandler(log, 0))
	r.Get("/readyz", httpserver.HealthCheckHandler(log, cfg.HealthTimeout, httpserver.Check{
		Name: "storage",
		Fn: func(ctx context.Context) error {
			_, err := store.List(ctx, readinessPrefix)
			return err
		},
	}))

	if local, ok := store.(*storage.LocalStorage); ok {
		r.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(local.Dir()))))
	}

	r.Mount("/", svc.Handle())
	return r
}

// limitBody caps request bodies at n bytes. Reads past the limit fail with
// *http.MaxBytesError, which the error handler turns into 413.
func limitBody(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if n <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}
