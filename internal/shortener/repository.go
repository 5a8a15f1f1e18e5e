package shortener

import (
	"context"
	"time"
)

// Store is the durable persistence layer for mappings.
type Store interface {
	// Put persists a new mapping atomically. It returns ErrDuplicateCode if
	// the code already has a row, expired or not; expired codes are retired
	// until the reaper physically removes them.
	Put(ctx context.Context, mapping *Mapping) error

	// Get returns the live mapping for a code. Missing and expired codes
	// both report ErrNotFound. A Get issued after a successful Put for the
	// same code observes that mapping or a later state, never a stale one.
	Get(ctx context.Context, code Code) (*Mapping, error)

	// Delete removes a mapping. Deleting an absent code is not an error.
	Delete(ctx context.Context, code Code) error

	// ReapExpired removes every mapping whose expiry has passed and returns
	// the removed codes so callers can evict dependent cache entries.
	ReapExpired(ctx context.Context) ([]Code, error)

	// NextSequence atomically increments and returns the code sequence
	// counter. The counter survives restarts and only moves forward.
	NextSequence(ctx context.Context) (uint64, error)

	// Ping checks store connectivity.
	Ping(ctx context.Context) error
}

// Cache is the volatile code→URL layer in front of the store. A failing
// cache must degrade to misses; it never blocks request completion.
type Cache interface {
	// Get returns the cached URL for a code, or ErrCacheMiss.
	Get(ctx context.Context, code Code) (string, error)

	// Set inserts or overwrites an entry. After ttl the entry is treated as
	// absent even if never explicitly evicted.
	Set(ctx context.Context, code Code, longURL string, ttl time.Duration) error

	// Invalidate removes an entry early. Absent entries are not an error.
	Invalidate(ctx context.Context, code Code) error
}
