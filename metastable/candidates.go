package metastable

import (
	"errors"
	"math"

	"github.com/katalvlaran/hullvolt/hull"
	"github.com/katalvlaran/hullvolt/structure"
)

// ErrNoReference indicates a hull result without a pure-A endpoint.
var ErrNoReference = errors.New("metastable: hull has no pure-A reference")

// CandidatesFromHull returns the sampler inputs of a hull: the pure-A
// endpoint as reference and every other stable or near-hull phase (within
// the hull cutoff) as the pool. Pure-A polymorphs are left out; they can
// never lower NumA.
func CandidatesFromHull(res *hull.Result, molarMassB float64) (Candidate, []Candidate, error) {
	var (
		ref   Candidate
		found bool
		pool  []Candidate
	)
	for _, p := range res.Stable {
		var q, err = structure.GravimetricCapacity(p.NumA, molarMassB)
		if err != nil {
			return Candidate{}, nil, err
		}
		var c = Candidate{
			Label:        p.Record.Label(),
			NumA:         p.NumA,
			EnthalpyPerB: p.EnthalpyPerB,
			Capacity:     q,
		}
		switch {
		case p.Endpoint && math.IsInf(p.NumA, 1):
			ref, found = c, true
		case math.IsInf(p.NumA, 1):
		default:
			pool = append(pool, c)
		}
	}
	if !found {
		return Candidate{}, nil, ErrNoReference
	}

	return ref, pool, nil
}
