// Package httpserver runs the portal API as a plain HTTP server for local development and
// container deployments.
//
// Server.Run blocks until its context is cancelled or the process receives SIGINT or
// SIGTERM, then shuts down gracefully within the configured timeout. HealthCheckHandler
// provides JSON liveness and readiness endpoints.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
