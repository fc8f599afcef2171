package voltage_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hullvolt/structure"
	"github.com/katalvlaran/hullvolt/voltage"
)

const tol = 1e-12

func TestCompute_ThreePhaseHull(t *testing.T) {
	// μ_A = -1, μ_B = -2; AB at formation -0.5 has H/atom = -2, i.e. -4 per B.
	comps := []float64{0, 0.5, 1}
	perB := []float64{-2, -4, -1}

	c, err := voltage.Compute(comps, perB, -1, 30.973762)
	require.NoError(t, err)

	require.Len(t, c.NumA, 3)
	assert.True(t, math.IsInf(c.NumA[0], 1))
	assert.Equal(t, []float64{1, 0}, c.NumA[1:])
	// A-rich segment ends at pure A: -(-1 - -4)/(+Inf - 1) + (-1) = μ_A.
	// AB → B: -(-4 - -2)/(1 - 0) + (-1) = 1 V.
	assert.InDeltaSlice(t, []float64{-1, 1, 1}, c.Voltage, tol)
	assert.True(t, math.IsInf(c.Capacity[0], 1))
	assert.Equal(t, 0.0, c.Capacity[2])
	assert.True(t, c.Monotonic)
	assert.Empty(t, c.Violations)
}

func TestCompute_FourPhaseHull(t *testing.T) {
	comps := []float64{0, 0.5, 0.75, 1}
	perB := []float64{-5, -7, -10, -1}
	const mass = 10.0

	c, err := voltage.Compute(comps, perB, -1, mass)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{-1, 0.5, 1, 1}, c.Voltage, tol)
	assert.InDelta(t, 3.0, c.NumA[1], tol)
	assert.InDelta(t, 1.0, c.NumA[2], tol)
	assert.True(t, c.Monotonic)

	q1, _ := structure.GravimetricCapacity(1, mass)
	q3, _ := structure.GravimetricCapacity(3, mass)
	assert.InDelta(t, q3, c.Capacity[1], 1e-9)
	assert.InDelta(t, q3, c.MaxCapacity(), 1e-9)

	steps := c.Steps()
	require.Len(t, steps, 2)
	assert.Equal(t, voltage.Step{From: 0, To: c.Capacity[2], Voltage: 1}, steps[0])
	assert.InDelta(t, q1, steps[1].From, 1e-9)
	assert.InDelta(t, 0.5, steps[1].Voltage, tol)

	assert.InDelta(t, 2.0/3.0, c.AverageVoltage(), 1e-9)
}

func TestCompute_NonMonotonicIsReported(t *testing.T) {
	comps := []float64{0, 0.5, 0.75, 1}
	perB := []float64{-5, -7, -12, -1}

	c, err := voltage.Compute(comps, perB, -1, 10)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{-1, 1.5, 1, 1}, c.Voltage, tol)
	assert.False(t, c.Monotonic)
	assert.Equal(t, []int{1}, c.Violations)
}

func TestCompute_Errors(t *testing.T) {
	_, err := voltage.Compute([]float64{0, 1}, []float64{-1}, -1, 10)
	assert.ErrorIs(t, err, voltage.ErrLengthMismatch)

	_, err = voltage.Compute([]float64{0}, []float64{-1}, -1, 10)
	assert.ErrorIs(t, err, voltage.ErrTooFewPoints)

	_, err = voltage.Compute([]float64{0, 0.5, 0.5, 1}, []float64{-1, -2, -2, -1}, -1, 10)
	assert.ErrorIs(t, err, voltage.ErrNotSorted)

	_, err = voltage.Compute([]float64{0, 1.2}, []float64{-1, -1}, -1, 10)
	assert.ErrorIs(t, err, voltage.ErrNotSorted)

	_, err = voltage.Compute([]float64{0, 1}, []float64{-2, -1}, -1, 0)
	assert.ErrorIs(t, err, voltage.ErrBadMolarMass)
}

func TestSegmentVoltage(t *testing.T) {
	assert.Equal(t, -1.9, voltage.SegmentVoltage(2, -6, math.Inf(1), -1, -1.9))
	assert.InDelta(t, 0.1, voltage.SegmentVoltage(0, -5, 1, -7, -1.9), tol)
}

func TestCompute_PureASegmentIsFiniteDifference(t *testing.T) {
	comps := []float64{0, 0.5, 1}
	perB := []float64{-2, -4, -1}
	const muA = -1.0

	c, err := voltage.Compute(comps, perB, muA, 10)
	require.NoError(t, err)

	// The +Inf end is the limit of a large but finite NumA.
	for _, n := range []float64{1e5, 1e8, 1e12} {
		fd := -(perB[2]-perB[1])/(n-1) + muA
		assert.InDelta(t, fd, c.Voltage[0], 1e-4, "NumA = %g", n)
	}
	assert.Equal(t, muA, c.Voltage[0])
	assert.InDelta(t, 2.0, c.Voltage[1]-c.Voltage[0], tol)
}

func TestCurve_AverageVoltageEmpty(t *testing.T) {
	assert.Equal(t, 0.0, voltage.Curve{}.AverageVoltage())
	assert.Equal(t, 0.0, voltage.Curve{}.MaxCapacity())
}
