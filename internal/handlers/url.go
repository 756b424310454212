package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortener-go/internal/shortener"
	"go.uber.org/zap"
)

// Shortener is the core service surface the HTTP layer consumes.
type Shortener interface {
	Shorten(ctx context.Context, longURL string) (string, error)
	Resolve(ctx context.Context, code string) (string, error)
}

// URLHandler exposes the shortener core over HTTP.
type URLHandler struct {
	service Shortener
	baseURL string
	logger  *zap.Logger
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(service Shortener, baseURL string, logger *zap.Logger) *URLHandler {
	return &URLHandler{
		service: service,
		baseURL: baseURL,
		logger:  logger,
	}
}

func (h *URLHandler) ShortenURL(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	code, err := h.service.Shorten(ctx, req.Body.URL)
	if err != nil {
		switch {
		case errors.Is(err, shortener.ErrInvalidURL):
			return nil, huma.Error400BadRequest("url must be a well-formed absolute url")
		case errors.Is(err, shortener.ErrCollision):
			return nil, huma.Error409Conflict("short code is taken by another url")
		default:
			h.logger.Error("shorten failed", zap.Error(err))

			return nil, huma.Error500InternalServerError("failed to shorten url")
		}
	}

	shortURL := fmt.Sprintf("%s/%s", h.baseURL, code)

	resp := &ShortenResponse{}
	resp.Headers.Location = shortURL
	resp.Body.ShortCode = code
	resp.Body.ShortURL = shortURL
	resp.Body.LongURL = req.Body.URL

	return resp, nil
}

func (h *URLHandler) LookupURL(ctx context.Context, req *LookupRequest) (*LookupResponse, error) {
	longURL, err := h.service.Resolve(ctx, req.Code)
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short url not found")
		}

		h.logger.Error("lookup failed", zap.String("code", req.Code), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to look up url")
	}

	resp := &LookupResponse{}
	resp.Body.ShortCode = req.Code
	resp.Body.LongURL = longURL

	return resp, nil
}

func (h *URLHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	longURL, err := h.service.Resolve(ctx, req.Code)
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short url not found")
		}

		h.logger.Error("redirect failed", zap.String("code", req.Code), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to get url")
	}

	resp := &RedirectResponse{
		Status: http.StatusMovedPermanently,
	}
	resp.Headers.Location = longURL

	return resp, nil
}

func (h *URLHandler) ServiceInfo(_ context.Context, _ *struct{}) (*InfoResponse, error) {
	resp := &InfoResponse{}
	resp.Body.Message = "URL shortener service"
	resp.Body.Endpoints = []string{
		"POST /api/data",
		"GET /api/url/{code}",
		"GET /{code}",
		"GET /health",
	}
	resp.Body.Timestamp = time.Now().UTC()

	return resp, nil
}
