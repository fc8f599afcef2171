package voltage

import (
	"fmt"
	"math"

	"github.com/katalvlaran/hullvolt/structure"
)

// SegmentVoltage returns the voltage of the tie line between the phases
// (nLo, eLo) and (nHi, eHi) with nLo < nHi, shifted by the A chemical
// potential muA. A segment ending at pure A (nHi = +Inf) has a vanishing
// slope and evaluates to muA.
func SegmentVoltage(nLo, eLo, nHi, eHi, muA float64) float64 {
	return -(eHi-eLo)/(nHi-nLo) + muA
}

// Compute builds the voltage curve of the stable hull phases comps (mole
// fraction of A, strictly increasing) with enthalpies per B enthalpyPerB.
// muA is the A chemical potential in eV/atom and molarMassB the molar mass
// of B in g/mol.
//
// Errors: ErrLengthMismatch, ErrTooFewPoints, ErrNotSorted, ErrBadMolarMass.
func Compute(comps, enthalpyPerB []float64, muA, molarMassB float64) (Curve, error) {
	if err := validate(comps, enthalpyPerB, molarMassB); err != nil {
		return Curve{}, err
	}

	var (
		n   = len(comps)
		num = make([]float64, n)
		i   int
	)
	for i = 0; i < n; i++ {
		num[i] = structure.NumAFromStoich(comps[i])
	}

	var c = Curve{
		NumA:    make([]float64, 0, n),
		Voltage: make([]float64, 0, n),
	}
	for i = n - 1; i > 0; i-- {
		c.Voltage = append(c.Voltage, SegmentVoltage(num[i-1], enthalpyPerB[i-1], num[i], enthalpyPerB[i], muA))
		c.NumA = append(c.NumA, num[i])
	}
	c.Voltage = append(c.Voltage, c.Voltage[len(c.Voltage)-1])
	c.NumA = append(c.NumA, 0)

	var err error
	c.Capacity, err = structure.GravimetricCapacities(c.NumA, molarMassB)
	if err != nil {
		return Curve{}, fmt.Errorf("%w: %v", ErrBadMolarMass, err)
	}

	c.Monotonic = true
	for i = 0; i+1 < len(c.Voltage); i++ {
		if c.Voltage[i] > c.Voltage[i+1]+monotonicEps {
			c.Monotonic = false
			c.Violations = append(c.Violations, i)
		}
	}

	return c, nil
}

func validate(comps, enthalpyPerB []float64, molarMassB float64) error {
	if len(comps) != len(enthalpyPerB) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(comps), len(enthalpyPerB))
	}
	if len(comps) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewPoints, len(comps))
	}
	if !(molarMassB > 0) {
		return fmt.Errorf("%w: %g", ErrBadMolarMass, molarMassB)
	}
	var i int
	for i = 0; i < len(comps); i++ {
		if comps[i] < 0 || comps[i] > 1 || (i > 0 && comps[i] <= comps[i-1]) {
			return fmt.Errorf("%w: comps[%d] = %g", ErrNotSorted, i, comps[i])
		}
	}

	return nil
}

// MaxCapacity returns the largest finite capacity of the curve.
func (c Curve) MaxCapacity() float64 {
	var best float64
	for _, q := range c.Capacity {
		if !math.IsInf(q, 0) && q > best {
			best = q
		}
	}

	return best
}

// Steps returns the finite-capacity plateaus of the curve ordered by
// increasing capacity. The plateau ending at an infinite capacity (pure A)
// is omitted.
func (c Curve) Steps() []Step {
	var out []Step
	var k int
	for k = len(c.Capacity) - 2; k >= 0; k-- {
		if math.IsInf(c.Capacity[k], 0) {
			continue
		}
		out = append(out, Step{From: c.Capacity[k+1], To: c.Capacity[k], Voltage: c.Voltage[k]})
	}

	return out
}

// AverageVoltage returns the capacity-weighted mean voltage over the finite
// plateaus, or 0 when the curve stores no finite capacity.
func (c Curve) AverageVoltage() float64 {
	var sum, width float64
	for _, s := range c.Steps() {
		sum += s.Voltage * (s.To - s.From)
		width += s.To - s.From
	}
	if width == 0 {
		return 0
	}

	return sum / width
}
