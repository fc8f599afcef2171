// Package volume computes the volume expansion of a binary A–B host as A is
// inserted, relative to the pure-B endpoint of the hull.
//
// Pure bookkeeping: the stable phases other than pure A are converted to
// n = x/(1−x) moles of A per B and their volumes per B divided by that of
// pure B.
package volume

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/hullvolt/structure"
)

var (
	// ErrLengthMismatch indicates comps and volumes of different length.
	ErrLengthMismatch = errors.New("volume: composition and volume slices differ in length")

	// ErrNoReference indicates that the first phase is not pure B (x = 0).
	ErrNoReference = errors.New("volume: first phase must be pure B")

	// ErrZeroVolume indicates a non-positive pure-B volume.
	ErrZeroVolume = errors.New("volume: pure-B volume must be positive")
)

// Curve holds the volume expansion of each phase, ordered as the input
// without the pure-A endpoint.
type Curve struct {
	NumA       []float64 // moles of A per B
	Capacity   []float64 // gravimetric capacity in mAh/g
	VolumePerB []float64 // Å³ per B
	Ratio      []float64 // VolumePerB / VolumePerB[0]
}

// Compute returns the volume curve of the stable phases comps (mole fraction
// of A, pure B first) with volumes per B volumePerB. molarMassB converts
// NumA to capacity.
//
// Errors: ErrLengthMismatch, ErrNoReference, ErrZeroVolume and
// structure.ErrBadMolarMass.
func Compute(comps, volumePerB []float64, molarMassB float64) (Curve, error) {
	if len(comps) != len(volumePerB) {
		return Curve{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(comps), len(volumePerB))
	}
	if len(comps) == 0 || comps[0] != 0 {
		return Curve{}, ErrNoReference
	}
	var ref = volumePerB[0]
	if !(ref > 0) {
		return Curve{}, fmt.Errorf("%w: %g", ErrZeroVolume, ref)
	}

	var c Curve
	var i int
	for i = range comps {
		if comps[i] == 1 {
			continue
		}
		c.NumA = append(c.NumA, structure.NumAFromStoich(comps[i]))
		c.VolumePerB = append(c.VolumePerB, volumePerB[i])
		c.Ratio = append(c.Ratio, volumePerB[i]/ref)
	}

	var err error
	if c.Capacity, err = structure.GravimetricCapacities(c.NumA, molarMassB); err != nil {
		return Curve{}, err
	}

	return c, nil
}

// MaxExpansion returns the largest ratio of the curve minus one, i.e. the
// fractional volume change at the most expanded phase.
func (c Curve) MaxExpansion() float64 {
	var best float64
	for _, r := range c.Ratio {
		if r-1 > best {
			best = r - 1
		}
	}

	return best
}
