package hull

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/hullvolt/chempot"
	"github.com/katalvlaran/hullvolt/structure"
)

// Sentinel errors returned by Build.
var (
	// ErrElementCount indicates that the chemical potentials do not describe
	// exactly two distinct elements.
	ErrElementCount = errors.New("hull: binary hull requires exactly two distinct elements")

	// ErrForeignElement indicates a record containing an element outside the pair.
	ErrForeignElement = errors.New("hull: record element does not match the hull elements")

	// ErrBelowHull indicates a point more than Eps below its tie line.
	ErrBelowHull = errors.New("hull: point lies below the lower hull")

	// ErrBadCutoff indicates a negative or non-finite cutoff or temperature.
	ErrBadCutoff = errors.New("hull: cutoff and temperature must be finite and non-negative")

	// ErrBadEps indicates a negative or NaN tolerance.
	ErrBadEps = errors.New("hull: Eps must be non-negative")
)

// DefaultEps is the on-hull tolerance.
const DefaultEps = 1e-12

// Options configures Build.
//
//   - Cutoff      - stability cutoff in eV/atom (≥ 0).
//   - Temperature - hull temperature in K (≥ 0); when > 0 it takes
//     precedence over Cutoff and is converted with structure.BoltzmannEV.
//   - Eps         - on-hull tolerance, default DefaultEps.
//   - Strict      - abort on the first invalid record instead of skipping it.
type Options struct {
	Cutoff      float64
	Temperature float64
	Eps         float64
	Strict      bool
}

// DefaultOptions returns a zero cutoff (only hull vertices and points on
// tie lines are stable), no temperature, DefaultEps and skip-and-warn.
func DefaultOptions() Options {
	return Options{Eps: DefaultEps}
}

// EffectiveCutoff resolves the cutoff energy: Temperature·k_B when a
// temperature is set, Cutoff otherwise.
func (o Options) EffectiveCutoff() float64 {
	if o.Temperature > 0 {
		return o.Temperature * structure.BoltzmannEV
	}

	return o.Cutoff
}

// Validate checks the numeric policy of o.
func (o Options) Validate() error {
	if !finiteNonNegative(o.Cutoff) {
		return fmt.Errorf("%w: cutoff %g", ErrBadCutoff, o.Cutoff)
	}
	if !finiteNonNegative(o.Temperature) {
		return fmt.Errorf("%w: temperature %g", ErrBadCutoff, o.Temperature)
	}
	if !(o.Eps >= 0) {
		return ErrBadEps
	}

	return nil
}

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

// Point is one structure in (composition, formation energy) space.
type Point struct {
	// Comp is the mole fraction of A, in [0,1].
	Comp float64
	// Formation is the formation energy per atom, eV/atom.
	Formation float64
	// NumA is moles of A per mole of B.
	NumA float64
	// EnthalpyPerB is the enthalpy per mole of B, eV.
	EnthalpyPerB float64
	// VolumePerB is the cell volume per mole of B, Å³.
	VolumePerB float64
	// HullDistance is the vertical distance above the lower hull, eV/atom.
	HullDistance float64
	// Endpoint marks the two chemical potentials.
	Endpoint bool
	// Record is the annotated record behind the point.
	Record *structure.Record
}

// Skipped is a record excluded from the hull.
type Skipped struct {
	Index  int
	Record *structure.Record
	Err    error
}

// Result is the outcome of Build.
//
// Points holds pure B first, then every valid record in input order, then
// pure A. Vertices indexes the full convex hull into Points; Lower is the
// stable lower hull sorted by composition. Stable and Unstable partition
// Points by the cutoff; Stable is sorted by composition, then formation
// energy.
type Result struct {
	Elements   [2]string
	Potentials [2]chempot.Potential
	Cutoff     float64
	Eps        float64

	Points   []Point
	Vertices []int
	Lower    []*Point
	Stable   []*Point
	Unstable []*Point
	Skipped  []Skipped
}
