package shortener

import "errors"

var (
	// ErrNotFound is returned when no live mapping exists for a code.
	// Expired mappings report ErrNotFound even before the reaper removes them.
	ErrNotFound = errors.New("mapping not found")

	// ErrInvalidURL is returned when the submitted URL is not a well-formed
	// absolute http(s) URL, or when a custom alias is malformed.
	ErrInvalidURL = errors.New("invalid url")

	// ErrDuplicateCode is returned when a code is already taken.
	ErrDuplicateCode = errors.New("code already in use")

	// ErrGenerationExhausted is returned when the random strategy could not
	// find a free code within its retry bound.
	ErrGenerationExhausted = errors.New("code generation exhausted")

	// ErrCodeSpaceExhausted is returned when the sequential counter exceeds
	// the range representable at the configured code length.
	ErrCodeSpaceExhausted = errors.New("code space exhausted")

	// ErrStoreUnavailable wraps store infrastructure failures so callers can
	// distinguish them from ErrNotFound.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrCacheMiss is returned by caches when a code has no entry. It never
	// surfaces to callers of the resolver.
	ErrCacheMiss = errors.New("cache miss")
)
