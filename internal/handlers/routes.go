package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers all URL shortener routes.
func RegisterRoutes(api huma.API, urlHandler *URLHandler) {
	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/api/data",
		Summary:     "Create short URL",
		Description: "Derives a deterministic short code for the submitted URL and stores the mapping.",
		Tags:        []string{"URLs"},
	}, urlHandler.ShortenURL)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/api/url/{code}",
		Summary:     "Look up short URL",
		Description: "Returns the original URL stored under the short code.",
		Tags:        []string{"URLs"},
	}, urlHandler.LookupURL)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/{code}",
		Summary:     "Redirect to original URL",
		Description: "Redirects to the original URL associated with the short code.",
		Tags:        []string{"URLs"},
	}, urlHandler.RedirectToURL)

	huma.Register(api, huma.Operation{
		Method:  http.MethodGet,
		Path:    "/",
		Summary: "Service info",
		Tags:    []string{"Meta"},
	}, urlHandler.ServiceInfo)
}
