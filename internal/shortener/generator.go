package shortener

import (
	"context"
	"errors"
	"fmt"

	"github.com/jaevor/go-nanoid"
)

// Generator produces a fresh code that does not collide with any live
// mapping at the time of generation.
type Generator interface {
	Generate(ctx context.Context) (Code, error)
}

// SequentialGenerator encodes a store-owned monotonic counter in base62.
// Uniqueness holds by construction: no two counter values share an encoding.
type SequentialGenerator struct {
	store      Store
	maxedAt    uint64
	codeLength int
}

// NewSequentialGenerator creates a generator bounded by the code space of
// the given code length.
func NewSequentialGenerator(store Store, codeLength int) *SequentialGenerator {
	return &SequentialGenerator{
		store:      store,
		maxedAt:    MaxSequence(codeLength),
		codeLength: codeLength,
	}
}

func (g *SequentialGenerator) Generate(ctx context.Context) (Code, error) {
	seq, err := g.store.NextSequence(ctx)
	if err != nil {
		return "", fmt.Errorf("next sequence: %w", err)
	}

	if seq > g.maxedAt {
		return "", fmt.Errorf("%w: sequence %d does not fit in %d symbols",
			ErrCodeSpaceExhausted, seq, g.codeLength)
	}

	return Code(EncodeBase62(seq)), nil
}

// RandomGenerator draws uniformly random fixed-length codes over the
// alphabet and verifies each draw against the store.
type RandomGenerator struct {
	store      Store
	draw       func() string
	maxRetries int
}

// NewRandomGenerator creates a random generator with the given code length
// and retry bound.
func NewRandomGenerator(store Store, codeLength, maxRetries int) (*RandomGenerator, error) {
	draw, err := nanoid.CustomASCII(Alphabet, codeLength)
	if err != nil {
		return nil, fmt.Errorf("build code generator: %w", err)
	}

	return &RandomGenerator{
		store:      store,
		draw:       draw,
		maxRetries: maxRetries,
	}, nil
}

func (g *RandomGenerator) Generate(ctx context.Context) (Code, error) {
	for attempt := 0; attempt < g.maxRetries; attempt++ {
		code := Code(g.draw())

		_, err := g.store.Get(ctx, code)
		if errors.Is(err, ErrNotFound) {
			return code, nil
		}

		if err != nil {
			return "", fmt.Errorf("existence check: %w", err)
		}
		// Collision, draw again.
	}

	return "", fmt.Errorf("%w: no free code after %d attempts",
		ErrGenerationExhausted, g.maxRetries)
}

var (
	_ Generator = (*SequentialGenerator)(nil)
	_ Generator = (*RandomGenerator)(nil)
)
