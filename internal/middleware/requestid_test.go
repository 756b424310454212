package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/serroba/shortener-go/internal/events"
	"github.com/serroba/shortener-go/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testOutput struct {
	Body string `json:"body"`
}

func setupRequestIDAPI(t *testing.T) (*chi.Mux, huma.API) {
	t.Helper()

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	api.UseMiddleware(middleware.RequestID(api))

	return router, api
}

func TestRequestID(t *testing.T) {
	t.Run("generates an id when none is supplied", func(t *testing.T) {
		router, api := setupRequestIDAPI(t)

		idChan := make(chan string, 1)

		huma.Get(api, "/test", func(ctx context.Context, _ *struct{}) (*testOutput, error) {
			idChan <- events.RequestIDFromContext(ctx)

			return &testOutput{Body: "ok"}, nil
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		id := <-idChan
		assert.NotEmpty(t, id)
		assert.Equal(t, id, w.Header().Get("X-Request-ID"))
	})

	t.Run("honors a client-supplied id", func(t *testing.T) {
		router, api := setupRequestIDAPI(t)

		idChan := make(chan string, 1)

		huma.Get(api, "/test", func(ctx context.Context, _ *struct{}) (*testOutput, error) {
			idChan <- events.RequestIDFromContext(ctx)

			return &testOutput{Body: "ok"}, nil
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Request-ID", "client-id-123")

		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, "client-id-123", <-idChan)
		assert.Equal(t, "client-id-123", w.Header().Get("X-Request-ID"))
	})

	t.Run("assigns distinct ids to distinct requests", func(t *testing.T) {
		router, api := setupRequestIDAPI(t)

		huma.Get(api, "/test", func(_ context.Context, _ *struct{}) (*testOutput, error) {
			return &testOutput{Body: "ok"}, nil
		})

		first := httptest.NewRecorder()
		router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/test", nil))

		second := httptest.NewRecorder()
		router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.NotEqual(t,
			first.Header().Get("X-Request-ID"),
			second.Header().Get("X-Request-ID"),
		)
	})
}
