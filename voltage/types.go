package voltage

import "errors"

// Sentinel errors returned by Compute.
var (
	// ErrLengthMismatch indicates comps and enthalpies of different length.
	ErrLengthMismatch = errors.New("voltage: composition and enthalpy slices differ in length")

	// ErrTooFewPoints indicates fewer than two hull phases.
	ErrTooFewPoints = errors.New("voltage: at least two hull phases are required")

	// ErrNotSorted indicates compositions that are not strictly increasing
	// or fall outside [0, 1].
	ErrNotSorted = errors.New("voltage: compositions must be strictly increasing in [0, 1]")

	// ErrBadMolarMass indicates a non-positive molar mass of B.
	ErrBadMolarMass = errors.New("voltage: molar mass of B must be positive")
)

// monotonicEps absorbs round-off when comparing neighbouring voltages.
const monotonicEps = 1e-9

// Curve is a voltage step function ordered from the A-richest hull phase to
// pure B. NumA[k], Capacity[k] and Voltage[k] describe point k; Voltage[k]
// holds on the capacity interval (Capacity[k+1], Capacity[k]].
type Curve struct {
	NumA     []float64 // moles of A per B, decreasing; +Inf at pure A
	Capacity []float64 // gravimetric capacity in mAh/g
	Voltage  []float64 // volts versus the A reference

	// Monotonic reports whether voltage never increases with capacity.
	Monotonic bool
	// Violations lists k such that Voltage[k] > Voltage[k+1].
	Violations []int
}

// Step is one plateau of a curve: Voltage holds on (From, To] in mAh/g.
type Step struct {
	From, To float64
	Voltage  float64
}
