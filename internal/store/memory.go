package store

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/linkfold/linkfold/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Store. It backs
// single-node deployments without a database and the unit tests.
type MemoryStore struct {
	mu       sync.RWMutex
	mappings map[shortener.Code]shortener.Mapping
	seq      atomic.Uint64
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory store with the sequence counter
// at zero, so the first NextSequence call returns 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mappings: make(map[shortener.Code]shortener.Mapping),
		now:      time.Now,
	}
}

func (m *MemoryStore) Put(_ context.Context, mapping *shortener.Mapping) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Expired rows stay duplicates until reaped; retired codes are not
	// silently resurrected.
	if _, exists := m.mappings[mapping.Code]; exists {
		return shortener.ErrDuplicateCode
	}

	m.mappings[mapping.Code] = *mapping

	return nil
}

func (m *MemoryStore) Get(_ context.Context, code shortener.Code) (*shortener.Mapping, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mapping, ok := m.mappings[code]
	if !ok || mapping.Expired(m.now()) {
		return nil, shortener.ErrNotFound
	}

	copied := mapping

	return &copied, nil
}

func (m *MemoryStore) Delete(_ context.Context, code shortener.Code) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.mappings, code)

	return nil
}

func (m *MemoryStore) ReapExpired(_ context.Context) ([]shortener.Code, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	var reaped []shortener.Code

	for code, mapping := range m.mappings {
		if mapping.Expired(now) {
			delete(m.mappings, code)
			reaped = append(reaped, code)
		}
	}

	return reaped, nil
}

func (m *MemoryStore) NextSequence(_ context.Context) (uint64, error) {
	return m.seq.Add(1), nil
}

func (m *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// Len reports the number of rows, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.mappings)
}

// Compile-time check.
var _ shortener.Store = (*MemoryStore)(nil)
