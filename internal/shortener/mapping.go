package shortener

import "time"

// Code represents a short code identifying a mapping.
type Code string

// Mapping associates a short code with its original URL.
type Mapping struct {
	Code      Code
	LongURL   string
	CreatedAt time.Time
	ExpiresAt time.Time // zero => never expires
}

// Expired reports whether the mapping is past its expiry at the given instant.
func (m *Mapping) Expired(now time.Time) bool {
	return !m.ExpiresAt.IsZero() && !m.ExpiresAt.After(now)
}

// RemainingTTL returns how long the mapping is still valid at the given
// instant, and whether it expires at all.
func (m *Mapping) RemainingTTL(now time.Time) (time.Duration, bool) {
	if m.ExpiresAt.IsZero() {
		return 0, false
	}

	return m.ExpiresAt.Sub(now), true
}
