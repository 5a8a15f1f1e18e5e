package invalidation

import (
	"context"

	"github.com/linkfold/linkfold/internal/messaging"
	"go.uber.org/zap"
)

// Evictor removes a single entry from the local cache.
type Evictor interface {
	Invalidate(ctx context.Context, code string) error
}

// NewHandler returns a message handler that evicts the announced code from
// the local cache. Eviction failures are returned so the message is nacked
// and redelivered.
func NewHandler(cache Evictor, logger *zap.Logger) messaging.Handler[CodeInvalidatedEvent] {
	return func(ctx context.Context, event *CodeInvalidatedEvent) error {
		if err := cache.Invalidate(ctx, event.Code); err != nil {
			return err
		}

		logger.Debug("evicted invalidated code",
			zap.String("code", event.Code),
			zap.String("reason", event.Reason),
		)

		return nil
	}
}
