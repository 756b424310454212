package health

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortener-go/internal/shortener"
)

// Checker defines the interface for probing backend connectivity.
type Checker interface {
	Ping(ctx context.Context) error
}

// StatusReporter reports which backend the shortener is writing to.
type StatusReporter interface {
	Status() shortener.Status
}

// Handler handles health check operations.
type Handler struct {
	durable Checker
	service StatusReporter
}

// NewHandler creates a new health handler. durable may be nil when no
// durable backend is configured.
func NewHandler(durable Checker, service StatusReporter) *Handler {
	return &Handler{
		durable: durable,
		service: service,
	}
}

// Response is the response for the health check endpoint.
type Response struct {
	Body struct {
		Status    string    `json:"status"`
		Backend   string    `json:"backend"`
		Durable   string    `json:"durable"`
		Timestamp time.Time `json:"timestamp"`
	}
}

// Check reports service health. The service is degraded when the durable
// backend is unreachable or has already been abandoned by fallback; it still
// serves traffic from the memory store in both cases.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	status := h.service.Status()

	resp := &Response{}
	resp.Body.Status = "ok"
	resp.Body.Backend = status.Active
	resp.Body.Timestamp = time.Now().UTC()

	switch {
	case status.FellBack:
		resp.Body.Status = "degraded"
		resp.Body.Durable = "abandoned"
	case h.durable == nil:
		resp.Body.Durable = "none"
	case h.durable.Ping(ctx) != nil:
		resp.Body.Status = "degraded"
		resp.Body.Durable = "unhealthy"
	default:
		resp.Body.Durable = "healthy"
	}

	return resp, nil
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/health", h.Check)
}
