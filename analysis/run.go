package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/katalvlaran/hullvolt/chempot"
	"github.com/katalvlaran/hullvolt/hull"
	"github.com/katalvlaran/hullvolt/internal/logger"
	"github.com/katalvlaran/hullvolt/metastable"
	"github.com/katalvlaran/hullvolt/structure"
	"github.com/katalvlaran/hullvolt/voltage"
	"github.com/katalvlaran/hullvolt/volume"
)

// Report is the outcome of one analysis run. Hull points reference the
// records passed to Run.
type Report struct {
	RunID      uuid.UUID
	Elements   [2]string
	Cutoff     float64
	Potentials [2]chempot.Potential
	Hull       *hull.Result
	Voltage    *voltage.Curve
	Volume     *volume.Curve
	Metastable *metastable.Result
	Warnings   []string
}

func (r *Report) warn(format string, args ...any) {
	var msg = fmt.Sprintf(format, args...)
	logger.Warn("%s", msg)
	r.Warnings = append(r.Warnings, msg)
}

// Run analyses records under cfg. Records are annotated in place. obs, if
// non-nil, observes the metastable sampler.
//
// Configuration and resolution errors abort the run; invalid records are
// skipped unless cfg.Strict is set. A non-monotonic voltage curve, an
// unconverged sampler and a volume curve without a pure-B volume are
// reported as warnings.
func Run(ctx context.Context, cfg Config, records []structure.Record, obs metastable.Observer) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var rep = &Report{RunID: uuid.New()}
	logger.Section("analysis " + rep.RunID.String())

	pots, err := chempot.Resolve(cfg.Elements, records, chempot.Options{Energies: cfg.ChemPots})
	if err != nil {
		return nil, err
	}
	rep.Potentials = pots
	rep.Elements = [2]string{pots[0].Element, pots[1].Element}
	logger.Debug("chemical potentials: %s %g eV/atom, %s %g eV/atom",
		pots[0].Element, pots[0].EnthalpyPerAtom, pots[1].Element, pots[1].EnthalpyPerAtom)

	if rep.Hull, err = hull.Build(pots, records, cfg.HullOptions()); err != nil {
		return nil, err
	}
	rep.Cutoff = rep.Hull.Cutoff
	if cfg.HullCutoff > 0 && cfg.HullTemperature > 0 {
		rep.warn("hull cutoff %g eV/atom ignored in favour of temperature %g K", cfg.HullCutoff, cfg.HullTemperature)
	}

	if !cfg.Voltage.Enabled && !cfg.Volume.Enabled && !cfg.Metastable.Enabled {
		return rep, nil
	}
	massB, err := structure.MolarMass(rep.Elements[1])
	if err != nil {
		return nil, fmt.Errorf("analysis: capacity of %s: %w", rep.Elements[1], err)
	}

	if cfg.Voltage.Enabled {
		logger.Section("voltage")
		c, err := voltage.Compute(rep.Hull.HullComp(), rep.Hull.HullEnthalpyPerB(), pots[0].EnthalpyPerAtom, massB)
		if err != nil {
			return nil, err
		}
		if !c.Monotonic {
			rep.warn("voltage rises with capacity at steps %v; hull or data may be inconsistent", c.Violations)
		}
		rep.Voltage = &c
	}

	if cfg.Volume.Enabled {
		logger.Section("volume")
		c, err := volume.Compute(rep.Hull.HullComp(), rep.Hull.HullVolumePerB(), massB)
		switch {
		case errors.Is(err, volume.ErrZeroVolume):
			rep.warn("volume curve skipped: %v", err)
		case err != nil:
			return nil, err
		default:
			rep.Volume = &c
		}
	}

	if cfg.Metastable.Enabled {
		logger.Section("metastable")
		ref, pool, err := metastable.CandidatesFromHull(rep.Hull, massB)
		if err != nil {
			return nil, err
		}
		var opts = cfg.SamplerOptions()
		opts.MuA = pots[0].EnthalpyPerAtom
		opts.Observer = obs
		if rep.Metastable, err = metastable.Sample(ctx, ref, pool, opts); err != nil {
			return nil, err
		}
		if !rep.Metastable.Converged {
			rep.warn("metastable profile unconverged after %d paths", rep.Metastable.Trials)
		}
	}

	return rep, nil
}
