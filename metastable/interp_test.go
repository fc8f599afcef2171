package metastable_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hullvolt/chempot"
	"github.com/katalvlaran/hullvolt/hull"
	"github.com/katalvlaran/hullvolt/metastable"
	"github.com/katalvlaran/hullvolt/structure"
)

func TestGrid(t *testing.T) {
	g := metastable.Grid(5, 2000)
	assert.Equal(t, []float64{0, 500, 1000, 1500, 2000}, g)
	assert.Equal(t, []float64{0}, metastable.Grid(1, 2000))
}

func TestStepInterp(t *testing.T) {
	grid := []float64{0, 1, 2, 3, 4}

	// Walk order: each voltage holds down to the next sample.
	assert.Equal(t, []float64{20, 20, 10, 10, 0}, metastable.StepInterp(grid, []float64{3, 1}, []float64{10, 20}))

	// Later samples overwrite earlier ones at and below their capacity.
	assert.Equal(t, []float64{10, 10, 10, 10, 0}, metastable.StepInterp(grid, []float64{1, 3}, []float64{20, 10}))

	assert.Equal(t, make([]float64, 5), metastable.StepInterp(grid, nil, nil))
}

func TestCandidatesFromHull(t *testing.T) {
	pots := chempot.FromEnergies([2]string{"Li", "P"}, [2]float64{-1, -2})
	records := []structure.Record{
		{
			ID:              [2]string{"lip", "a"},
			Stoichiometry:   []structure.ElementCount{{Element: "Li", Count: 1}, {Element: "P", Count: 1}},
			NumFU:           1,
			Enthalpy:        -4,
			EnthalpyPerAtom: -2,
		},
		{
			ID:              [2]string{"li", "bcc"},
			Stoichiometry:   []structure.ElementCount{{Element: "Li", Count: 1}},
			NumFU:           1,
			Enthalpy:        -0.99,
			EnthalpyPerAtom: -0.99,
		},
	}
	opts := hull.DefaultOptions()
	opts.Cutoff = 0.05
	res, err := hull.Build(pots, records, opts)
	require.NoError(t, err)

	mP, err := structure.MolarMass("P")
	require.NoError(t, err)
	ref, pool, err := metastable.CandidatesFromHull(res, mP)
	require.NoError(t, err)

	assert.True(t, math.IsInf(ref.NumA, 1))
	assert.Equal(t, -1.0, ref.EnthalpyPerB)
	require.Len(t, pool, 2, "pure-A polymorph is left out")
	assert.Equal(t, 0.0, pool[0].NumA)
	assert.Equal(t, "lip a", pool[1].Label)
	assert.InDelta(t, -4.0, pool[1].EnthalpyPerB, 1e-12)
	assert.Equal(t, records[0].Capacity, pool[1].Capacity)

	_, _, err = metastable.CandidatesFromHull(&hull.Result{}, mP)
	assert.ErrorIs(t, err, metastable.ErrNoReference)
}

func TestPathStateString(t *testing.T) {
	assert.Equal(t, "delithiated", metastable.Delithiated.String())
	assert.Equal(t, "aborted", metastable.Aborted.String())
	assert.Equal(t, "converged", metastable.Converged.String())
	assert.Equal(t, "accumulating", metastable.Accumulating.String())
}
