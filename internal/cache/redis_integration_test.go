//go:build integration

package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/linkfold/linkfold/internal/cache"
	"github.com/linkfold/linkfold/internal/shortener"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRedisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}

	return "localhost:6379"
}

func TestRedisCacheIntegration(t *testing.T) {
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{Addr: getRedisAddr()})
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	c := cache.NewRedisCache(client)

	t.Run("set and get", func(t *testing.T) {
		defer client.Del(ctx, "code:rcget1")

		require.NoError(t, c.Set(ctx, "rcget1", "https://example.com", time.Minute))

		longURL, err := c.Get(ctx, "rcget1")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com", longURL)
	})

	t.Run("miss on unknown code", func(t *testing.T) {
		_, err := c.Get(ctx, "rcmissing")

		assert.ErrorIs(t, err, shortener.ErrCacheMiss)
	})

	t.Run("entry disappears after its ttl", func(t *testing.T) {
		defer client.Del(ctx, "code:rcttl1")

		require.NoError(t, c.Set(ctx, "rcttl1", "https://example.com", 50*time.Millisecond))

		time.Sleep(100 * time.Millisecond)

		_, err := c.Get(ctx, "rcttl1")

		assert.ErrorIs(t, err, shortener.ErrCacheMiss)
	})

	t.Run("invalidate removes the entry", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "rcinv1", "https://example.com", time.Minute))
		require.NoError(t, c.Invalidate(ctx, "rcinv1"))

		_, err := c.Get(ctx, "rcinv1")

		assert.ErrorIs(t, err, shortener.ErrCacheMiss)
	})
}
