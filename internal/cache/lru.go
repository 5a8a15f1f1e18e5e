package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/linkfold/linkfold/internal/shortener"
)

type lruEntry struct {
	longURL  string
	deadline time.Time // zero => no TTL
}

// LRUCache is a bounded in-process implementation of shortener.Cache.
// Size pressure evicts least-recently-used entries; each entry additionally
// carries its own deadline, checked on read.
type LRUCache struct {
	entries *lru.Cache[shortener.Code, lruEntry]
	now     func() time.Time
}

// NewLRUCache creates an LRU cache holding at most size entries.
func NewLRUCache(size int) (*LRUCache, error) {
	entries, err := lru.New[shortener.Code, lruEntry](size)
	if err != nil {
		return nil, err
	}

	return &LRUCache{
		entries: entries,
		now:     time.Now,
	}, nil
}

func (c *LRUCache) Get(_ context.Context, code shortener.Code) (string, error) {
	entry, ok := c.entries.Get(code)
	if !ok {
		return "", shortener.ErrCacheMiss
	}

	if !entry.deadline.IsZero() && !entry.deadline.After(c.now()) {
		c.entries.Remove(code)

		return "", shortener.ErrCacheMiss
	}

	return entry.longURL, nil
}

func (c *LRUCache) Set(_ context.Context, code shortener.Code, longURL string, ttl time.Duration) error {
	entry := lruEntry{longURL: longURL}
	if ttl > 0 {
		entry.deadline = c.now().Add(ttl)
	}

	c.entries.Add(code, entry)

	return nil
}

func (c *LRUCache) Invalidate(_ context.Context, code shortener.Code) error {
	c.entries.Remove(code)

	return nil
}

// Len reports the current number of entries, expired ones included.
func (c *LRUCache) Len() int {
	return c.entries.Len()
}

// Compile-time check.
var _ shortener.Cache = (*LRUCache)(nil)
