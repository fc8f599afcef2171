package metastable

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBelow(t *testing.T) {
	pool := []Candidate{{NumA: 0}, {NumA: 1}, {NumA: 1}, {NumA: 1}, {NumA: 3}}

	assert.Equal(t, 5, below(pool, math.Inf(1)))
	assert.Equal(t, 4, below(pool, 3))
	assert.Equal(t, 1, below(pool, 1), "same-composition polymorphs are outside the window")
	assert.Equal(t, 0, below(pool, 0))
	assert.Equal(t, 0, below(nil, 1))
}

func TestPathSegment(t *testing.T) {
	pureA := Candidate{NumA: math.Inf(1), EnthalpyPerB: -1.9}
	lip := Candidate{NumA: 1, EnthalpyPerB: -7.6}
	p := Candidate{NumA: 0, EnthalpyPerB: -5.4}

	assert.Equal(t, 0.0, pathSegment(lip, pureA, -1.9))
	assert.InDelta(t, 0.3, pathSegment(p, lip, -1.9), 1e-12)
}
