// Package logger builds the service's *slog.Logger.
//
// New takes functional options for format, level, static attributes and context
// extractors. NewFromConfig applies the defaults of the deployment environment
// (APP_ENV): JSON at INFO for production and staging, text at DEBUG elsewhere. LOG_LEVEL
// overrides the level.
//
// Loggers built with context extractors run them on each record handled through
// the *Context methods. The API registers requestid.LogExtractor so
// every line carries request_id.
//
// Attribute helpers in attr.go keep key names consistent across packages:
//
//	log.InfoContext(ctx, "report uploaded",
//		logger.DoctorID(doctorID),
//		logger.ObjectKey(key),
//		logger.Size(len(pdf)),
//	)
package logger
