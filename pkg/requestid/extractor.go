package requestid

import (
	"context"
	"log/slog"

	"github.com/cardmia/ecgportal/pkg/logger"
)

// LogExtractor adds request_id to every record logged with a request context.
func LogExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if requestID := FromContext(ctx); requestID != "" {
			return logger.RequestID(requestID), true
		}
		return slog.Attr{}, false
	}
}
