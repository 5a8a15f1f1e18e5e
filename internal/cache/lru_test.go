package cache_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/linkfold/linkfold/internal/cache"
	"github.com/linkfold/linkfold/internal/shortener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUCache(t *testing.T) {
	t.Run("stores and returns entries", func(t *testing.T) {
		c, err := cache.NewLRUCache(10)
		require.NoError(t, err)

		require.NoError(t, c.Set(context.Background(), "abc123", "https://example.com", time.Hour))

		longURL, err := c.Get(context.Background(), "abc123")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com", longURL)
	})

	t.Run("misses on unknown codes", func(t *testing.T) {
		c, err := cache.NewLRUCache(10)
		require.NoError(t, err)

		_, err = c.Get(context.Background(), "missing")

		assert.ErrorIs(t, err, shortener.ErrCacheMiss)
	})

	t.Run("treats entries past their ttl as absent", func(t *testing.T) {
		c, err := cache.NewLRUCache(10)
		require.NoError(t, err)

		require.NoError(t, c.Set(context.Background(), "abc123", "https://example.com", 10*time.Millisecond))

		time.Sleep(20 * time.Millisecond)

		_, err = c.Get(context.Background(), "abc123")

		assert.ErrorIs(t, err, shortener.ErrCacheMiss)
		assert.Zero(t, c.Len(), "expired entry is dropped on read")
	})

	t.Run("overwrites an existing entry", func(t *testing.T) {
		c, err := cache.NewLRUCache(10)
		require.NoError(t, err)

		require.NoError(t, c.Set(context.Background(), "abc123", "https://old.example", time.Hour))
		require.NoError(t, c.Set(context.Background(), "abc123", "https://new.example", time.Hour))

		longURL, err := c.Get(context.Background(), "abc123")

		require.NoError(t, err)
		assert.Equal(t, "https://new.example", longURL)
	})

	t.Run("evicts least recently used entries at the size bound", func(t *testing.T) {
		c, err := cache.NewLRUCache(3)
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			code := shortener.Code(fmt.Sprintf("code%d", i))
			require.NoError(t, c.Set(context.Background(), code, "https://example.com", time.Hour))
		}

		assert.Equal(t, 3, c.Len())

		_, err = c.Get(context.Background(), "code0")
		assert.ErrorIs(t, err, shortener.ErrCacheMiss)

		_, err = c.Get(context.Background(), "code4")
		assert.NoError(t, err)
	})

	t.Run("invalidate removes an entry early", func(t *testing.T) {
		c, err := cache.NewLRUCache(10)
		require.NoError(t, err)

		require.NoError(t, c.Set(context.Background(), "abc123", "https://example.com", time.Hour))
		require.NoError(t, c.Invalidate(context.Background(), "abc123"))

		_, err = c.Get(context.Background(), "abc123")

		assert.ErrorIs(t, err, shortener.ErrCacheMiss)
	})

	t.Run("invalidating an absent entry succeeds", func(t *testing.T) {
		c, err := cache.NewLRUCache(10)
		require.NoError(t, err)

		assert.NoError(t, c.Invalidate(context.Background(), "missing"))
	})
}

func TestNoopCache(t *testing.T) {
	t.Run("always misses", func(t *testing.T) {
		c := cache.NewNoopCache()

		require.NoError(t, c.Set(context.Background(), "abc123", "https://example.com", time.Hour))

		_, err := c.Get(context.Background(), "abc123")

		assert.ErrorIs(t, err, shortener.ErrCacheMiss)
	})
}
