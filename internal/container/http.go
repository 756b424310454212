package container

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/samber/do"
	"github.com/serroba/shortener-go/internal/handlers"
	"github.com/serroba/shortener-go/internal/health"
	"github.com/serroba/shortener-go/internal/middleware"
	"github.com/serroba/shortener-go/internal/shortener"
	"github.com/serroba/shortener-go/internal/store"
	"go.uber.org/zap"
)

// HTTPPackage provides the router and the API with all routes registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)
		service := do.MustInvoke[*shortener.Service](i)
		durable := do.MustInvoke[store.Store](i)

		api := humachi.New(router, huma.DefaultConfig("URL Shortener", "1.0.0"))
		api.UseMiddleware(
			middleware.RequestID(api),
			middleware.RequestLog(logger),
		)

		baseURL := fmt.Sprintf("http://localhost:%d", opts.Port)

		handlers.RegisterRoutes(api, handlers.NewURLHandler(service, baseURL, logger))
		health.RegisterRoutes(api, health.NewHandler(durable, service))

		return api, nil
	})
}
