package shortener_test

import (
	"context"
	"errors"
	"time"

	"github.com/linkfold/linkfold/internal/shortener"
)

var errBroken = errors.New("broken")

// fakeStore is a configurable test double for shortener.Store.
type fakeStore struct {
	putErr       error
	putErrOnce   bool
	getErr       error
	getMapping   *shortener.Mapping
	nextErr      error
	seq          uint64
	putCalls     int
	getCalls     int
	deleteCalls  int
	deletedCodes []shortener.Code
}

func (f *fakeStore) Put(context.Context, *shortener.Mapping) error {
	f.putCalls++

	err := f.putErr
	if err != nil && f.putErrOnce {
		f.putErr = nil
	}

	return err
}

func (f *fakeStore) Get(context.Context, shortener.Code) (*shortener.Mapping, error) {
	f.getCalls++

	if f.getErr != nil {
		return nil, f.getErr
	}

	return f.getMapping, nil
}

func (f *fakeStore) Delete(_ context.Context, code shortener.Code) error {
	f.deleteCalls++
	f.deletedCodes = append(f.deletedCodes, code)

	return nil
}

func (f *fakeStore) ReapExpired(context.Context) ([]shortener.Code, error) {
	return nil, nil
}

func (f *fakeStore) NextSequence(context.Context) (uint64, error) {
	if f.nextErr != nil {
		return 0, f.nextErr
	}

	f.seq++

	return f.seq, nil
}

func (f *fakeStore) Ping(context.Context) error {
	return nil
}

// brokenCache fails every operation, simulating an unreachable cache service.
type brokenCache struct{}

func (brokenCache) Get(context.Context, shortener.Code) (string, error) {
	return "", errBroken
}

func (brokenCache) Set(context.Context, shortener.Code, string, time.Duration) error {
	return errBroken
}

func (brokenCache) Invalidate(context.Context, shortener.Code) error {
	return errBroken
}

// recordingCache is an in-memory cache that records the TTLs it was given.
type recordingCache struct {
	entries     map[shortener.Code]string
	ttls        map[shortener.Code]time.Duration
	invalidated []shortener.Code
}

func newRecordingCache() *recordingCache {
	return &recordingCache{
		entries: make(map[shortener.Code]string),
		ttls:    make(map[shortener.Code]time.Duration),
	}
}

func (c *recordingCache) Get(_ context.Context, code shortener.Code) (string, error) {
	longURL, ok := c.entries[code]
	if !ok {
		return "", shortener.ErrCacheMiss
	}

	return longURL, nil
}

func (c *recordingCache) Set(_ context.Context, code shortener.Code, longURL string, ttl time.Duration) error {
	c.entries[code] = longURL
	c.ttls[code] = ttl

	return nil
}

func (c *recordingCache) Invalidate(_ context.Context, code shortener.Code) error {
	delete(c.entries, code)
	c.invalidated = append(c.invalidated, code)

	return nil
}

// fixedGenerator always returns the same code and counts invocations.
type fixedGenerator struct {
	code  shortener.Code
	calls int
}

func (g *fixedGenerator) Generate(context.Context) (shortener.Code, error) {
	g.calls++

	return g.code, nil
}
