// Package cache provides the volatile code→URL layers in front of the
// mapping store: a shared Redis cache, a bounded in-process LRU, and a
// no-op cache for deployments that run without one.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/linkfold/linkfold/internal/shortener"
	"github.com/redis/go-redis/v9"
)

// RedisCache is a Redis-backed implementation of shortener.Cache with
// native per-key TTLs.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a Redis cache. Keys are namespaced under "code:".
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: "code:",
	}
}

func (r *RedisCache) Get(ctx context.Context, code shortener.Code) (string, error) {
	longURL, err := r.client.Get(ctx, r.prefix+string(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", shortener.ErrCacheMiss
		}

		return "", err
	}

	return longURL, nil
}

func (r *RedisCache) Set(ctx context.Context, code shortener.Code, longURL string, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+string(code), longURL, ttl).Err()
}

func (r *RedisCache) Invalidate(ctx context.Context, code shortener.Code) error {
	return r.client.Del(ctx, r.prefix+string(code)).Err()
}

// Compile-time check.
var _ shortener.Cache = (*RedisCache)(nil)
