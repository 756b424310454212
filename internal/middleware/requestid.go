package middleware

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/jaevor/go-nanoid"
	"github.com/serroba/shortener-go/internal/events"
)

const requestIDHeader = "X-Request-ID"

const requestIDLength = 21

// RequestID assigns each request a nanoid identifier, honoring one supplied
// by the client, and threads it through the context for event correlation.
func RequestID(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	generate, _ := nanoid.Standard(requestIDLength)

	return func(ctx huma.Context, next func(huma.Context)) {
		id := ctx.Header(requestIDHeader)
		if id == "" {
			id = generate()
		}

		newCtx := events.ContextWithRequestID(ctx.Context(), id)
		ctx = huma.WithContext(ctx, newCtx)
		ctx.SetHeader(requestIDHeader, id)

		next(ctx)
	}
}
