package analysis_test

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hullvolt/analysis"
	"github.com/katalvlaran/hullvolt/chempot"
	"github.com/katalvlaran/hullvolt/hull"
	"github.com/katalvlaran/hullvolt/metastable"
	"github.com/katalvlaran/hullvolt/structure"
)

func record(id string, li, p, nfu int, hpa, vol float64) structure.Record {
	var st []structure.ElementCount
	if li > 0 {
		st = append(st, structure.ElementCount{Element: "Li", Count: li})
	}
	if p > 0 {
		st = append(st, structure.ElementCount{Element: "P", Count: p})
	}
	return structure.Record{
		ID:              [2]string{id, "fixture"},
		Stoichiometry:   st,
		NumFU:           nfu,
		Enthalpy:        hpa * float64((li+p)*nfu),
		EnthalpyPerAtom: hpa,
		CellVolume:      vol,
	}
}

// lithiumPhosphide has μ_Li = -1.9, μ_P = -5.4 and two hull compounds,
// LiP (Ef = -0.35) and Li3P (Ef = -0.325).
func lithiumPhosphide() []structure.Record {
	return []structure.Record{
		record("li", 1, 0, 2, -1.9, 40),
		record("p", 0, 1, 8, -5.4, 160),
		record("lip", 1, 1, 4, -4.0, 160),
		record("li3p", 3, 1, 2, -3.1, 200),
	}
}

func config() analysis.Config {
	cfg := analysis.DefaultConfig()
	cfg.Elements = []string{"Li", "P"}
	return cfg
}

func TestRun_Curves(t *testing.T) {
	rep, err := analysis.Run(context.Background(), config(), lithiumPhosphide(), nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, rep.RunID)
	assert.Equal(t, [2]string{"Li", "P"}, rep.Elements)
	assert.Equal(t, []float64{0, 0.5, 0.75, 1}, rep.Hull.HullComp())

	require.NotNil(t, rep.Voltage)
	assert.InDeltaSlice(t, []float64{-1.9, 0.3, 0.7, 0.7}, rep.Voltage.Voltage, 1e-9)
	assert.True(t, rep.Voltage.Monotonic)

	require.NotNil(t, rep.Volume)
	assert.InDeltaSlice(t, []float64{1, 2, 5}, rep.Volume.Ratio, 1e-12)

	assert.Nil(t, rep.Metastable)
	assert.Empty(t, rep.Warnings)
}

func TestRun_Metastable(t *testing.T) {
	cfg := config()
	cfg.Metastable.Enabled = true
	cfg.Metastable.Seed = 3
	cfg.Metastable.MaxTrials = 32
	cfg.Metastable.Window = 1000

	obs := &paths{}
	rep, err := analysis.Run(context.Background(), cfg, lithiumPhosphide(), obs)
	require.NoError(t, err)

	require.NotNil(t, rep.Metastable)
	assert.Equal(t, 32, rep.Metastable.Trials)
	assert.False(t, rep.Metastable.Converged)
	assert.Equal(t, 32, obs.n)
	require.Len(t, rep.Warnings, 1)
	assert.Contains(t, rep.Warnings[0], "unconverged")
	assert.Len(t, rep.Metastable.Pool, 4)
}

type paths struct{ n int }

func (p *paths) OnPath(metastable.PathState) { p.n++ }
func (p *paths) OnBatch(int, float64)        {}

func TestRun_ExplicitChemPots(t *testing.T) {
	cfg := config()
	cfg.ChemPots = []float64{1.9, 5.4}

	rep, err := analysis.Run(context.Background(), cfg, lithiumPhosphide(), nil)
	require.NoError(t, err)

	assert.Equal(t, -1.9, rep.Potentials[0].EnthalpyPerAtom)
	assert.Equal(t, [2]string{"command", "line"}, rep.Potentials[1].Record.ID)
	assert.NotNil(t, rep.Voltage)
	assert.Nil(t, rep.Volume, "no pure-B volume without a reference structure")
	require.Len(t, rep.Warnings, 1)
	assert.Contains(t, rep.Warnings[0], "volume curve skipped")
}

func TestRun_Errors(t *testing.T) {
	_, err := analysis.Run(context.Background(), analysis.DefaultConfig(), lithiumPhosphide(), nil)
	assert.ErrorIs(t, err, analysis.ErrConfig)
	assert.ErrorIs(t, err, hull.ErrElementCount)

	cfg := config()
	cfg.Elements = []string{"Na", "P"}
	_, err = analysis.Run(context.Background(), cfg, lithiumPhosphide(), nil)
	assert.ErrorIs(t, err, chempot.ErrNoCandidate)
}

func TestReport_WriteJSON(t *testing.T) {
	cfg := config()
	cfg.Metastable.Enabled = true
	cfg.Metastable.MaxTrials = 8
	cfg.Metastable.GridSize = 10

	rep, err := analysis.Run(context.Background(), cfg, lithiumPhosphide(), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, rep.WriteJSON(&buf))

	var doc struct {
		RunID string `json:"run_id"`
		Hull  struct {
			Comp   []float64        `json:"comp"`
			Points []map[string]any `json:"points"`
		} `json:"hull"`
		Voltage struct {
			NumA []any `json:"num_a"`
		} `json:"voltage"`
		Metastable struct {
			Voltage []float64 `json:"voltage"`
			Trials  int       `json:"trials"`
		} `json:"metastable"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, rep.RunID.String(), doc.RunID)
	assert.Equal(t, []float64{0, 0.5, 0.75, 1}, doc.Hull.Comp)
	require.Len(t, doc.Hull.Points, 6)
	last := doc.Hull.Points[len(doc.Hull.Points)-1]
	assert.Equal(t, "+Inf", last["num_a"])
	assert.Equal(t, true, last["endpoint"])
	assert.Equal(t, "+Inf", doc.Voltage.NumA[0])
	assert.Len(t, doc.Metastable.Voltage, 10)
	assert.Equal(t, 8, doc.Metastable.Trials)
}

func TestReport_WriteSummary(t *testing.T) {
	rep, err := analysis.Run(context.Background(), config(), lithiumPhosphide(), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, rep.WriteSummary(&buf))
	out := buf.String()
	assert.Contains(t, out, "Li-P hull")
	assert.Contains(t, out, "Li3P")
	assert.Contains(t, out, "6 stable, 0 unstable, 0 skipped")
	assert.Contains(t, out, "max volume expansion 400.0%")
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hullvolt.toml")
	require.NoError(t, os.WriteFile(path, []byte(strings.TrimSpace(`
elements = ["Li", "P"]
hull_cutoff = 0.02

[voltage]
enabled = false

[metastable]
enabled = true
seed = 7
max_trials = 50
`)), 0o600))

	t.Setenv("HULLVOLT_HULL_CUTOFF", "0.05")
	t.Setenv("HULLVOLT_METASTABLE_WORKERS", "2")

	cfg, err := analysis.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Li", "P"}, cfg.Elements)
	assert.Equal(t, 0.05, cfg.HullCutoff, "environment overrides the file")
	assert.False(t, cfg.Voltage.Enabled)
	assert.True(t, cfg.Volume.Enabled, "defaults survive a partial file")
	assert.True(t, cfg.Metastable.Enabled)
	assert.Equal(t, int64(7), cfg.Metastable.Seed)
	assert.Equal(t, 50, cfg.Metastable.MaxTrials)
	assert.Equal(t, metastable.DefaultGridSize, cfg.Metastable.GridSize)
	assert.Equal(t, 2, cfg.SamplerOptions().Workers)
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("elements = [\"Li\""), 0o600))
	_, err := analysis.LoadConfig(bad)
	assert.ErrorIs(t, err, analysis.ErrConfig)

	_, err = analysis.LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	t.Setenv("HULLVOLT_ELEMENTS", "Li,P")
	t.Setenv("HULLVOLT_HULL_CUTOFF", "not-a-number")
	_, err = analysis.LoadConfig("")
	assert.ErrorIs(t, err, analysis.ErrConfig)
}

func TestConfig_SamplerToleranceFollowsGrid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.toml")
	require.NoError(t, os.WriteFile(path, []byte(strings.TrimSpace(`
elements = ["Li", "P"]

[metastable]
enabled = true
grid_size = 400
`)), 0o600))

	cfg, err := analysis.LoadConfig(path)
	require.NoError(t, err)
	assert.InDelta(t, 400e-9, cfg.SamplerOptions().Tolerance, 1e-20)

	cfg = config()
	assert.Equal(t, metastable.DefaultOptions().Tolerance, cfg.SamplerOptions().Tolerance)

	cfg.Metastable.Tolerance = 1e-3
	cfg.Metastable.GridSize = 400
	assert.Equal(t, 1e-3, cfg.SamplerOptions().Tolerance, "an explicit tolerance wins")

	t.Setenv("HULLVOLT_METASTABLE_GRID_SIZE", "50")
	cfg, err = analysis.LoadConfig(path)
	require.NoError(t, err)
	assert.InDelta(t, 50e-9, cfg.SamplerOptions().Tolerance, 1e-20)
}

func TestConfig_Validate(t *testing.T) {
	cfg := config()
	cfg.HullCutoff = 0.1
	cfg.HullTemperature = 300
	assert.NoError(t, cfg.Validate(), "temperature takes precedence")
	assert.InDelta(t, 300*structure.BoltzmannEV, cfg.HullOptions().EffectiveCutoff(), 1e-15)

	cfg = config()
	cfg.HullCutoff = -1
	assert.ErrorIs(t, cfg.Validate(), hull.ErrBadCutoff)

	cfg = config()
	cfg.HullTemperature = math.NaN()
	assert.ErrorIs(t, cfg.Validate(), analysis.ErrConfig)

	cfg = config()
	cfg.ChemPots = []float64{-1, -2, -3}
	assert.ErrorIs(t, cfg.Validate(), chempot.ErrBadEnergyCount)

	cfg = config()
	cfg.Metastable.Enabled = true
	cfg.Metastable.GridSize = 0
	assert.ErrorIs(t, cfg.Validate(), metastable.ErrBadOptions)

	cfg = config()
	cfg.Elements = []string{"Li", "Li"}
	assert.ErrorIs(t, cfg.Validate(), analysis.ErrConfig)
}
