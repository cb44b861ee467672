package rng

import (
	"context"
	"math/rand/v2"

	"healthlab/internal"
)

// StreamConstant is the second PCG seed word. Together with the caller's seed
// it fully determines the stream, so results reproduce across runs and machines.
const StreamConstant uint64 = 0xda3e39cb94b95bdb

// PCGAdapter implements ports.RNGPort with math/rand/v2's PCG generator
// (128-bit LCG state with DXSM output). Seed s maps to NewPCG(uint64(s), StreamConstant).
type PCGAdapter struct {
	logger *internal.Logger
}

// NewPCGAdapter creates the adapter
func NewPCGAdapter(logger *internal.Logger) *PCGAdapter {
	if logger == nil {
		logger = internal.Discard
	}
	return &PCGAdapter{logger: logger.With("rng")}
}

// SeededSource creates a deterministic random source for a named operation
func (a *PCGAdapter) SeededSource(ctx context.Context, name string, seed int64) (rand.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.logger.Trace("seeding %s stream with %d", name, seed)
	return rand.NewPCG(uint64(seed), StreamConstant), nil
}

