package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/linkfold/linkfold/internal/invalidation"
	"github.com/linkfold/linkfold/internal/messaging"
	"go.uber.org/zap"
)

// cacheOpTimeout bounds every cache call so a hung cache service degrades
// to a miss instead of stalling the request.
const cacheOpTimeout = time.Second

// ShortenRequest carries the inputs of a shorten call.
type ShortenRequest struct {
	LongURL     string
	CustomAlias string        // empty => use the generator
	TTL         time.Duration // zero => never expires
}

// Service orchestrates code generation, the mapping store, and the
// cache-aside read path.
type Service struct {
	store             Store
	cache             Cache
	generator         Generator
	cacheTTL          time.Duration
	maxPutAttempts    int
	publishInvalidate messaging.Publish[invalidation.CodeInvalidatedEvent]
	logger            *zap.Logger
	now               func() time.Time
}

// NewService creates the resolver service. cacheTTL bounds how long resolved
// URLs stay cached; maxPutAttempts bounds generate-put races on collisions.
func NewService(
	store Store,
	cache Cache,
	generator Generator,
	cacheTTL time.Duration,
	maxPutAttempts int,
	publishInvalidate messaging.Publish[invalidation.CodeInvalidatedEvent],
	logger *zap.Logger,
) *Service {
	if maxPutAttempts < 1 {
		maxPutAttempts = 1
	}

	return &Service{
		store:             store,
		cache:             cache,
		generator:         generator,
		cacheTTL:          cacheTTL,
		maxPutAttempts:    maxPutAttempts,
		publishInvalidate: publishInvalidate,
		logger:            logger,
		now:               time.Now,
	}
}

// Resolve returns the long URL for a code, serving from cache when possible
// and falling back to the store on a miss. Cache failures degrade to misses.
func (s *Service) Resolve(ctx context.Context, code Code) (string, error) {
	cacheCtx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	longURL, err := s.cache.Get(cacheCtx, code)
	if err == nil {
		return longURL, nil
	}

	if !errors.Is(err, ErrCacheMiss) {
		s.logger.Warn("cache read failed, falling through to store",
			zap.String("code", string(code)),
			zap.Error(err),
		)
	}

	mapping, err := s.store.Get(ctx, code)
	if err != nil {
		return "", err
	}

	fillCtx, cancelFill := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancelFill()

	if err := s.cache.Set(fillCtx, code, mapping.LongURL, s.cacheFillTTL(mapping)); err != nil {
		s.logger.Warn("cache populate failed",
			zap.String("code", string(code)),
			zap.Error(err),
		)
	}

	return mapping.LongURL, nil
}

// Shorten validates the URL, assigns a code, and persists the mapping.
// With a custom alias the store decides uniqueness directly; with a
// generated code a Put collision triggers a fresh generation, bounded by
// maxPutAttempts.
func (s *Service) Shorten(ctx context.Context, req ShortenRequest) (*Mapping, error) {
	if err := ValidateURL(req.LongURL); err != nil {
		return nil, err
	}

	if req.CustomAlias != "" {
		if err := ValidateAlias(req.CustomAlias); err != nil {
			return nil, err
		}

		return s.put(ctx, Code(req.CustomAlias), req)
	}

	for attempt := 0; attempt < s.maxPutAttempts; attempt++ {
		code, err := s.generator.Generate(ctx)
		if err != nil {
			return nil, err
		}

		mapping, err := s.put(ctx, code, req)
		if errors.Is(err, ErrDuplicateCode) {
			// Lost a race for this code (or hit a retired expired one).
			continue
		}

		if err != nil {
			return nil, err
		}

		return mapping, nil
	}

	return nil, fmt.Errorf("%w: every generated code was taken at persist time",
		ErrGenerationExhausted)
}

func (s *Service) put(ctx context.Context, code Code, req ShortenRequest) (*Mapping, error) {
	now := s.now().UTC()

	mapping := &Mapping{
		Code:      code,
		LongURL:   req.LongURL,
		CreatedAt: now,
	}
	if req.TTL > 0 {
		mapping.ExpiresAt = now.Add(req.TTL)
	}

	if err := s.store.Put(ctx, mapping); err != nil {
		return nil, err
	}

	return mapping, nil
}

// Delete removes a mapping, evicts its cache entry, and announces the
// invalidation so peer nodes evict theirs. Idempotent.
func (s *Service) Delete(ctx context.Context, code Code) error {
	if err := s.store.Delete(ctx, code); err != nil {
		return err
	}

	cacheCtx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	if err := s.cache.Invalidate(cacheCtx, code); err != nil {
		s.logger.Warn("cache invalidate failed",
			zap.String("code", string(code)),
			zap.Error(err),
		)
	}

	event := &invalidation.CodeInvalidatedEvent{
		Code:          string(code),
		Reason:        invalidation.ReasonDeleted,
		InvalidatedAt: s.now().UTC(),
	}
	if err := s.publishInvalidate(event); err != nil {
		s.logger.Error("failed to publish invalidation event",
			zap.String("code", string(code)),
			zap.Error(err),
		)
	}

	return nil
}

// cacheFillTTL caps the configured cache TTL by the mapping's own remaining
// lifetime so a cached URL never outlives its mapping by more than the
// propagation window.
func (s *Service) cacheFillTTL(mapping *Mapping) time.Duration {
	ttl := s.cacheTTL

	if remaining, expires := mapping.RemainingTTL(s.now()); expires && remaining < ttl {
		ttl = remaining
	}

	return ttl
}
