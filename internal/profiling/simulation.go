package profiling

import (
	"math/rand/v2"

	"healthlab/domain/core"

	"gonum.org/v1/gonum/stat/distuv"
)

// BernoulliSimulator draws independent Bernoulli(p) samples from a caller-supplied source
type BernoulliSimulator struct {
	src rand.Source
}

// NewBernoulliSimulator binds a simulator to src. The simulator advances src.
func NewBernoulliSimulator(src rand.Source) *BernoulliSimulator {
	return &BernoulliSimulator{src: src}
}

// Prevalence draws n samples with success probability p and returns the
// fraction of successes together with their count. The fraction is always k/n.
func (s *BernoulliSimulator) Prevalence(p float64, n int) (float64, int, error) {
	if n <= 0 {
		return 0, 0, core.NewInvalidArgumentError("n", "must be positive")
	}
	if !(p >= 0 && p <= 1) {
		return 0, 0, core.NewInvalidArgumentError("p", "must lie in [0, 1]")
	}

	dist := distuv.Bernoulli{P: p, Src: s.src}
	successes := 0
	for i := 0; i < n; i++ {
		if dist.Rand() == 1 {
			successes++
		}
	}

	return float64(successes) / float64(n), successes, nil
}
