// Package reaper periodically removes expired mappings from the store,
// independent of request traffic.
package reaper

import (
	"context"
	"time"

	"github.com/linkfold/linkfold/internal/invalidation"
	"github.com/linkfold/linkfold/internal/messaging"
	"github.com/linkfold/linkfold/internal/shortener"
	"go.uber.org/zap"
)

// Reaper sweeps expired mappings on a fixed interval. For each reaped code
// it evicts the local cache entry and announces the invalidation so peer
// nodes evict theirs.
type Reaper struct {
	store    shortener.Store
	cache    shortener.Cache
	publish  messaging.Publish[invalidation.CodeInvalidatedEvent]
	interval time.Duration
	logger   *zap.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

// New creates a reaper sweeping every interval.
func New(
	store shortener.Store,
	cache shortener.Cache,
	publish messaging.Publish[invalidation.CodeInvalidatedEvent],
	interval time.Duration,
	logger *zap.Logger,
) *Reaper {
	return &Reaper{
		store:    store,
		cache:    cache,
		publish:  publish,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop in the background.
func (r *Reaper) Start(ctx context.Context) error {
	ctx, r.cancel = context.WithCancel(ctx)

	go func() {
		defer close(r.done)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Sweep(ctx)
			}
		}
	}()

	return nil
}

// Sweep runs one reap pass. Exported so operators can trigger it directly
// and tests can run it without the ticker.
func (r *Reaper) Sweep(ctx context.Context) {
	reaped, err := r.store.ReapExpired(ctx)
	if err != nil {
		r.logger.Error("reap pass failed", zap.Error(err))

		return
	}

	if len(reaped) == 0 {
		return
	}

	now := time.Now().UTC()

	for _, code := range reaped {
		if err := r.cache.Invalidate(ctx, code); err != nil {
			r.logger.Warn("cache invalidate failed for reaped code",
				zap.String("code", string(code)),
				zap.Error(err),
			)
		}

		event := &invalidation.CodeInvalidatedEvent{
			Code:          string(code),
			Reason:        invalidation.ReasonExpired,
			InvalidatedAt: now,
		}
		if err := r.publish(event); err != nil {
			r.logger.Error("failed to publish invalidation for reaped code",
				zap.String("code", string(code)),
				zap.Error(err),
			)
		}
	}

	r.logger.Info("reaped expired mappings", zap.Int("count", len(reaped)))
}

// Shutdown stops the sweep loop and waits for an in-flight pass to finish.
// Shutting down a reaper that never started is a no-op.
func (r *Reaper) Shutdown() error {
	if r.cancel == nil {
		return nil
	}

	r.cancel()
	<-r.done

	return nil
}
