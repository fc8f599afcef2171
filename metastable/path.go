package metastable

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/katalvlaran/hullvolt/voltage"
)

// below returns the number of leading phases of pool (sorted by NumA)
// whose NumA is strictly below n.
func below(pool []Candidate, n float64) int {
	return sort.Search(len(pool), func(i int) bool { return pool[i].NumA >= n })
}

// pathSegment is the voltage of a step from prev down to next. Leaving pure
// A carries no voltage.
func pathSegment(next, prev Candidate, muA float64) float64 {
	if math.IsInf(prev.NumA, 1) {
		return 0
	}

	return voltage.SegmentVoltage(next.NumA, next.EnthalpyPerB, prev.NumA, prev.EnthalpyPerB, muA)
}

// walk samples one discharge path from ref through pool. The returned path
// is Delithiated on success and Aborted alongside a non-nil error.
//
// The selector only ever sees the phases strictly below the current NumA,
// so polymorphs sharing a composition never crowd out the eligible ones.
func walk(ref Candidate, pool []Candidate, sel Selector, rng *rand.Rand, muA float64) (Path, error) {
	var (
		p    = Path{State: AtReference}
		prev = ref
		hi   int
	)
	for {
		p.State = Walking
		hi = below(pool, prev.NumA)
		j, err := sel.Next(rng, pool, hi, prev.NumA)
		if err != nil {
			p.State = Aborted
			return p, err
		}
		if j < 0 || j >= hi || !(pool[j].NumA < prev.NumA) {
			p.State = Aborted
			return p, fmt.Errorf("%w: index %d after NumA %g", ErrNonMonotonic, j, prev.NumA)
		}

		var next = pool[j]
		p.Steps = append(p.Steps, j)
		p.Segments = append(p.Segments, Segment{
			Capacity: next.Capacity,
			Voltage:  pathSegment(next, prev, muA),
		})
		if next.NumA == 0 {
			p.State = Delithiated
			return p, nil
		}
		prev = next
	}
}

// profile resamples the segments of p onto grid.
func (p Path) profile(grid []float64) []float64 {
	var xs = make([]float64, len(p.Segments))
	var ys = make([]float64, len(p.Segments))
	for i, s := range p.Segments {
		xs[i], ys[i] = s.Capacity, s.Voltage
	}

	return StepInterp(grid, xs, ys)
}
