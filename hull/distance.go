package hull

import "sort"

// distance returns the vertical gap between (x, e) and the lower hull
// described by comp (strictly increasing, len ≥ 2) and energy.
//
// The bracketing tie line is found by bisect-left on comp: i is the first
// hull composition ≥ x and the line runs through i−1 and i. i is clamped to
// [1, len−1] so that points at the endpoints use the first or last tie line.
//
// Complexity: O(log H) for H hull vertices.
func distance(comp, energy []float64, x, e float64) float64 {
	var i = sort.SearchFloat64s(comp, x)
	if i < 1 {
		i = 1
	}
	if i > len(comp)-1 {
		i = len(comp) - 1
	}
	var (
		x0, x1 = comp[i-1], comp[i]
		e0, e1 = energy[i-1], energy[i]
	)
	var gradient = (e1 - e0) / (x1 - x0)
	var intercept = ((e1 + e0) - gradient*(x1+x0)) / 2

	return e - (gradient*x + intercept)
}

// Distance returns the hull distance of an arbitrary point (x, e), using
// the same tie-line lookup as Build. No snapping is applied.
func (r *Result) Distance(x, e float64) float64 {
	return distance(r.HullComp(), r.HullEnergy(), x, e)
}

// HullComp returns the compositions of the lower-hull vertices, strictly
// increasing.
func (r *Result) HullComp() []float64 {
	var out = make([]float64, len(r.Lower))
	for i, p := range r.Lower {
		out[i] = p.Comp
	}
	return out
}

// HullEnergy returns the formation energies of the lower-hull vertices.
func (r *Result) HullEnergy() []float64 {
	var out = make([]float64, len(r.Lower))
	for i, p := range r.Lower {
		out[i] = p.Formation
	}
	return out
}

// HullEnthalpyPerB returns the enthalpy per B of the lower-hull vertices.
func (r *Result) HullEnthalpyPerB() []float64 {
	var out = make([]float64, len(r.Lower))
	for i, p := range r.Lower {
		out[i] = p.EnthalpyPerB
	}
	return out
}

// HullVolumePerB returns the volume per B of the lower-hull vertices.
func (r *Result) HullVolumePerB() []float64 {
	var out = make([]float64, len(r.Lower))
	for i, p := range r.Lower {
		out[i] = p.VolumePerB
	}
	return out
}
