package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/linkfold/linkfold/internal/shortener"
	"go.uber.org/zap"
)

// Shortener is the core service surface the HTTP layer depends on.
type Shortener interface {
	Shorten(ctx context.Context, req shortener.ShortenRequest) (*shortener.Mapping, error)
	Resolve(ctx context.Context, code shortener.Code) (string, error)
	Delete(ctx context.Context, code shortener.Code) error
}

// URLHandler exposes shorten, resolve, and delete over HTTP.
type URLHandler struct {
	service Shortener
	baseURL string
	logger  *zap.Logger
}

// NewURLHandler creates a URL handler.
func NewURLHandler(service Shortener, baseURL string, logger *zap.Logger) *URLHandler {
	return &URLHandler{
		service: service,
		baseURL: baseURL,
		logger:  logger,
	}
}

// CreateShortLink handles POST /shorten.
func (h *URLHandler) CreateShortLink(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	mapping, err := h.service.Shorten(ctx, shortener.ShortenRequest{
		LongURL:     req.Body.URL,
		CustomAlias: req.Body.CustomAlias,
		TTL:         time.Duration(req.Body.TTLSeconds) * time.Second,
	})
	if err != nil {
		return nil, mapServiceError(err)
	}

	meta := RequestMetaFromContext(ctx)
	h.logger.Info("short link created",
		zap.String("code", string(mapping.Code)),
		zap.String("request_id", meta.RequestID),
		zap.String("client_ip", meta.ClientIP),
	)

	shortURL := fmt.Sprintf("%s/%s", h.baseURL, mapping.Code)

	resp := &ShortenResponse{}
	resp.Headers.Location = shortURL
	resp.Body.Code = string(mapping.Code)
	resp.Body.ShortURL = shortURL
	resp.Body.OriginalURL = mapping.LongURL

	if !mapping.ExpiresAt.IsZero() {
		expiresAt := mapping.ExpiresAt
		resp.Body.ExpiresAt = &expiresAt
	}

	return resp, nil
}

// RedirectToURL handles GET /{code}.
func (h *URLHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	longURL, err := h.service.Resolve(ctx, shortener.Code(req.Code))
	if err != nil {
		return nil, mapServiceError(err)
	}

	resp := &RedirectResponse{
		Status: http.StatusMovedPermanently,
	}
	resp.Headers.Location = longURL

	return resp, nil
}

// DeleteShortLink handles DELETE /{code}.
func (h *URLHandler) DeleteShortLink(ctx context.Context, req *DeleteRequest) (*DeleteResponse, error) {
	if err := h.service.Delete(ctx, shortener.Code(req.Code)); err != nil {
		return nil, mapServiceError(err)
	}

	return &DeleteResponse{Status: http.StatusNoContent}, nil
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, shortener.ErrInvalidURL):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, shortener.ErrDuplicateCode):
		return huma.Error409Conflict("code already in use")
	case errors.Is(err, shortener.ErrNotFound):
		return huma.Error404NotFound("short link not found")
	case errors.Is(err, shortener.ErrGenerationExhausted),
		errors.Is(err, shortener.ErrCodeSpaceExhausted),
		errors.Is(err, shortener.ErrStoreUnavailable):
		return huma.Error503ServiceUnavailable("temporarily unable to serve the request")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}
