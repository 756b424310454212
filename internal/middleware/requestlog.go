package middleware

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortener-go/internal/events"
	"go.uber.org/zap"
)

// RequestLog writes one structured access-log line per request.
func RequestLog(logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		next(ctx)

		url := ctx.URL()

		logger.Info("request handled",
			zap.String("requestId", events.RequestIDFromContext(ctx.Context())),
			zap.String("method", ctx.Method()),
			zap.String("path", url.Path),
			zap.Int("status", ctx.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
