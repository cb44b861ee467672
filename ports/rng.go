package ports

import (
	"context"
	"math/rand/v2"
)

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// SeededSource creates a deterministic random source for a named operation.
	// The same seed always yields the same stream, whatever the name.
	SeededSource(ctx context.Context, name string, seed int64) (rand.Source, error)
}
