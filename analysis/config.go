package analysis

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/katalvlaran/hullvolt/chempot"
	"github.com/katalvlaran/hullvolt/hull"
	"github.com/katalvlaran/hullvolt/metastable"
)

// EnvPrefix prefixes every environment override, e.g. HULLVOLT_HULL_CUTOFF.
const EnvPrefix = "HULLVOLT_"

// ErrConfig wraps every configuration error.
var ErrConfig = errors.New("analysis: invalid configuration")

// Config describes one analysis run. File keys are TOML; every field can be
// overridden from the environment (see EnvPrefix).
type Config struct {
	// Elements is the pair (A, B): working ion first, host second.
	Elements []string `toml:"elements" env:"ELEMENTS" envSeparator:","`
	// HullCutoff is the stability cutoff in eV/atom.
	HullCutoff float64 `toml:"hull_cutoff" env:"HULL_CUTOFF"`
	// HullTemperature in K takes precedence over HullCutoff when > 0.
	HullTemperature float64 `toml:"hull_temperature" env:"HULL_TEMPERATURE"`
	// ChemPots optionally overrides the elemental references (eV/atom).
	ChemPots []float64 `toml:"chem_pots" env:"CHEM_POTS" envSeparator:","`
	// Strict aborts on the first invalid record.
	Strict bool `toml:"strict" env:"STRICT"`

	Voltage    CurveConfig      `toml:"voltage" envPrefix:"VOLTAGE_"`
	Volume     CurveConfig      `toml:"volume" envPrefix:"VOLUME_"`
	Metastable MetastableConfig `toml:"metastable" envPrefix:"METASTABLE_"`
}

// CurveConfig toggles a derived curve.
type CurveConfig struct {
	Enabled bool `toml:"enabled" env:"ENABLED"`
}

// MetastableConfig mirrors metastable.Options. Workers = 0 uses GOMAXPROCS
// and Tolerance = 0 follows GridSize (metastable.DefaultTolerance).
type MetastableConfig struct {
	Enabled     bool    `toml:"enabled" env:"ENABLED"`
	Seed        int64   `toml:"seed" env:"SEED"`
	GridSize    int     `toml:"grid_size" env:"GRID_SIZE"`
	MaxCapacity float64 `toml:"max_capacity" env:"MAX_CAPACITY"`
	Tolerance   float64 `toml:"tolerance" env:"TOLERANCE"`
	Window      int     `toml:"window" env:"WINDOW"`
	MaxTrials   int     `toml:"max_trials" env:"MAX_TRIALS"`
	MaxRetries  int     `toml:"max_retries" env:"MAX_RETRIES"`
	Workers     int     `toml:"workers" env:"WORKERS"`
	BatchSize   int     `toml:"batch_size" env:"BATCH_SIZE"`
}

// DefaultConfig enables the voltage and volume curves and carries the
// sampler defaults with sampling switched off.
func DefaultConfig() Config {
	var m = metastable.DefaultOptions()
	return Config{
		Voltage: CurveConfig{Enabled: true},
		Volume:  CurveConfig{Enabled: true},
		Metastable: MetastableConfig{
			GridSize:    m.GridSize,
			MaxCapacity: m.MaxCapacity,
			Window:      m.Window,
			MaxTrials:   m.MaxTrials,
			MaxRetries:  m.MaxRetries,
			BatchSize:   m.BatchSize,
		},
	}
}

// LoadConfig decodes the configuration with DecodeConfig and validates it.
func LoadConfig(path string) (Config, error) {
	cfg, err := DecodeConfig(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// DecodeConfig starts from DefaultConfig, decodes the TOML file at path
// (when path is non-empty) and applies environment overrides. The result
// is not validated, so callers can fill in further fields first.
func DecodeConfig(path string) (Config, error) {
	var cfg = DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("analysis: read config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: decode %s: %w", ErrConfig, path, err)
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ParseEnv applies HULLVOLT_* environment overrides to cfg. Unset
// variables leave the corresponding field untouched.
func ParseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("%w: parse env: %w", ErrConfig, err)
	}

	return nil
}

// Validate checks the configuration. Supplying both a cutoff and a
// temperature is allowed; the temperature wins.
func (c Config) Validate() error {
	if len(c.Elements) != 2 || c.Elements[0] == "" || c.Elements[1] == "" || c.Elements[0] == c.Elements[1] {
		return fmt.Errorf("%w: %w: %v", ErrConfig, hull.ErrElementCount, c.Elements)
	}
	if err := c.HullOptions().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if n := len(c.ChemPots); n != 0 && n != 2 {
		return fmt.Errorf("%w: %w: got %d", ErrConfig, chempot.ErrBadEnergyCount, n)
	}
	if c.Metastable.Enabled {
		if err := c.SamplerOptions().Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrConfig, err)
		}
	}

	return nil
}

// HullOptions converts c into hull.Options.
func (c Config) HullOptions() hull.Options {
	var o = hull.DefaultOptions()
	o.Cutoff = c.HullCutoff
	o.Temperature = c.HullTemperature
	o.Strict = c.Strict
	return o
}

// SamplerOptions converts c into metastable.Options without MuA and
// Observer, which Run fills in.
func (c Config) SamplerOptions() metastable.Options {
	var o = metastable.DefaultOptions()
	var m = c.Metastable
	o.Seed = m.Seed
	o.GridSize = m.GridSize
	o.MaxCapacity = m.MaxCapacity
	o.Tolerance = metastable.DefaultTolerance(m.GridSize)
	if m.Tolerance != 0 {
		o.Tolerance = m.Tolerance
	}
	o.Window = m.Window
	o.MaxTrials = m.MaxTrials
	o.MaxRetries = m.MaxRetries
	o.BatchSize = m.BatchSize
	if m.Workers > 0 {
		o.Workers = m.Workers
	}
	return o
}
