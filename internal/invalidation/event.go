// Package invalidation distributes cache-eviction notices between nodes.
// Each node runs its own in-process cache; when a mapping is deleted or
// reaped on one node, every peer must drop its cached copy of the code.
package invalidation

import "time"

// TopicCodeInvalidated carries CodeInvalidatedEvent messages.
const TopicCodeInvalidated = "code.invalidated"

// Reasons a code stops being servable.
const (
	ReasonDeleted = "deleted"
	ReasonExpired = "expired"
)

// CodeInvalidatedEvent announces that a short code no longer resolves.
type CodeInvalidatedEvent struct {
	Code          string    `json:"code"`
	Reason        string    `json:"reason"`
	InvalidatedAt time.Time `json:"invalidatedAt"`
}
