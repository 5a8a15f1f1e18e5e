package cache

import (
	"context"
	"time"

	"github.com/linkfold/linkfold/internal/shortener"
)

// NoopCache always misses. Every resolve goes straight to the store.
type NoopCache struct{}

// NewNoopCache creates a cache that stores nothing.
func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

func (NoopCache) Get(context.Context, shortener.Code) (string, error) {
	return "", shortener.ErrCacheMiss
}

func (NoopCache) Set(context.Context, shortener.Code, string, time.Duration) error {
	return nil
}

func (NoopCache) Invalidate(context.Context, shortener.Code) error {
	return nil
}

// Compile-time check.
var _ shortener.Cache = NoopCache{}
