package metastable

import (
	"fmt"
	"math/rand"
)

// Selector chooses the next phase of a path.
//
// Next returns an index j in [0, hi) of pool (sorted by NumA). The walk
// passes the window of phases whose NumA is strictly below current, so
// every index in it is eligible; hi == 0 means none is left.
// Implementations must draw randomness only from rng.
//
// Energy-weighted (Boltzmann) and distribution-overlap weightings fit this
// interface; only UniformMonotonic is provided.
type Selector interface {
	Next(rng *rand.Rand, pool []Candidate, hi int, current float64) (int, error)
}

// UniformMonotonic draws uniformly from pool[:hi]. MaxRetries bounds the
// rejections of draws that do not lower NumA, which only happens when a
// caller hands it a window wider than the eligible range.
type UniformMonotonic struct {
	MaxRetries int
}

// Next implements Selector.
func (u UniformMonotonic) Next(rng *rand.Rand, pool []Candidate, hi int, current float64) (int, error) {
	if hi > 0 {
		var (
			count int
			j     int
		)
		for count = 1; count <= u.MaxRetries; count++ {
			j = rng.Intn(hi)
			if pool[j].NumA < current {
				return j, nil
			}
		}
	}

	return -1, fmt.Errorf("%w: %d draws below NumA %g among %d phases", ErrRetryExceeded, u.MaxRetries, current, hi)
}
