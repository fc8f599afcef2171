// Package chempot resolves the chemical potentials (per-atom reference
// energies) of the two elements of a binary system.
//
// A chemical potential is the energy zero-point of formation energies. It
// comes either from explicit energies supplied by the caller, or from the
// most stable single-element record of each element in a candidate pool.
// The pool must already be restricted to comparable calculation settings;
// chempot does not filter by parameters.
//
// Errors (sentinel):
//
//	– ErrElementCount   if the system is not exactly two distinct elements.
//	– ErrBadEnergyCount if explicit energies are given but not exactly two.
//	– ErrNoCandidate    if the pool has no single-element record for an element.
package chempot

import (
	"errors"

	"github.com/katalvlaran/hullvolt/structure"
)

// Sentinel errors returned by the chempot package.
var (
	// ErrElementCount indicates a system that is not exactly two distinct elements.
	ErrElementCount = errors.New("chempot: exactly two distinct elements are required")

	// ErrBadEnergyCount indicates explicit energies whose count is not two.
	ErrBadEnergyCount = errors.New("chempot: exactly two explicit energies are required")

	// ErrNoCandidate indicates that no single-element record exists for an element.
	ErrNoCandidate = errors.New("chempot: no chemical potential candidate")
)

// Potential is the resolved reference of one element.
//
// Record is a StructureRecord-shaped view of the reference with NumFU = 1
// so that downstream consumers can list it next to ordinary records. For
// explicit energies it carries the id pair ("command", "line") and no
// structural metadata.
type Potential struct {
	Element         string
	EnthalpyPerAtom float64
	VolumePerAtom   float64
	Record          structure.Record
}

// Options configures Resolve.
//
// Energies: optional explicit per-atom energies, in element order. When
// non-empty it must hold exactly two values and the pool is ignored.
type Options struct {
	Energies []float64
}

// DefaultOptions resolves from the pool.
func DefaultOptions() Options {
	return Options{}
}
