package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
)

// Checker reports whether a dependency is reachable.
type Checker interface {
	Ping(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) error

// Ping calls the wrapped function.
func (f CheckerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Handler handles health check operations.
type Handler struct {
	store Checker
	cache Checker
}

// NewHandler creates a health handler. cache may be nil when no external
// cache service is configured.
func NewHandler(store, cache Checker) *Handler {
	return &Handler{store: store, cache: cache}
}

// Response is the response for the health check endpoint.
type Response struct {
	Body struct {
		Status string `json:"status"`
		Store  string `json:"store"`
		Cache  string `json:"cache,omitempty"`
	}
}

// Check reports the health of the service and its dependencies. A failing
// cache degrades the status; a failing store marks it unhealthy.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"

	if err := h.store.Ping(ctx); err != nil {
		resp.Body.Store = "unhealthy"
		resp.Body.Status = "unhealthy"
	} else {
		resp.Body.Store = "healthy"
	}

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			resp.Body.Cache = "unhealthy"

			if resp.Body.Status == "ok" {
				resp.Body.Status = "degraded"
			}
		} else {
			resp.Body.Cache = "healthy"
		}
	}

	return resp, nil
}

// RegisterRoutes registers the health check route.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/health", h.Check)
}
