package hull

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/hullvolt/chempot"
	"github.com/katalvlaran/hullvolt/internal/logger"
	"github.com/katalvlaran/hullvolt/structure"
)

// Build constructs the binary hull of records relative to the chemical
// potentials pots (pots[0] = A, pots[1] = B) and annotates every valid
// record in place (Stoich, NumA, EnthalpyPerB, VolumePerB,
// FormationEnthalpyPerAtom, HullDistance, Capacity).
//
// The returned Result points into records; callers must not grow or
// reorder the slice while the Result is in use.
//
// Errors: ErrElementCount, ErrBadCutoff, ErrBadEps, ErrBelowHull, and in
// Strict mode the first per-record error (ErrForeignElement,
// structure.ErrMalformedStoichiometry, structure.ErrBadFormulaUnits).
//
// Complexity: O(N log N).
func Build(pots [2]chempot.Potential, records []structure.Record, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if pots[0].Element == "" || pots[1].Element == "" || pots[0].Element == pots[1].Element {
		return nil, fmt.Errorf("%w: %q, %q", ErrElementCount, pots[0].Element, pots[1].Element)
	}
	if opts.Temperature > 0 && opts.Cutoff > 0 {
		logger.Warn("hull: both cutoff %g eV and temperature %g K given; using temperature", opts.Cutoff, opts.Temperature)
	}

	var res = &Result{
		Elements:   [2]string{pots[0].Element, pots[1].Element},
		Potentials: pots,
		Cutoff:     opts.EffectiveCutoff(),
		Eps:        opts.Eps,
	}
	var massB, massErr = structure.MolarMass(res.Elements[1])
	if massErr != nil {
		logger.Warn("hull: %v; capacities left undefined", massErr)
	}

	// Stage 1: endpoints and per-record annotation.
	res.Points = make([]Point, 0, len(records)+2)
	res.Points = append(res.Points, endpoint(&res.Potentials[1], 0))
	var i int
	for i = range records {
		p, err := annotate(&records[i], res.Elements, pots)
		if err != nil {
			if opts.Strict {
				return nil, fmt.Errorf("hull: record %d: %w", i, err)
			}
			logger.Warn("hull: skipping record %d (%s): %v", i, records[i].Label(), err)
			res.Skipped = append(res.Skipped, Skipped{Index: i, Record: &records[i], Err: err})
			continue
		}
		res.Points = append(res.Points, p)
	}
	res.Points = append(res.Points, endpoint(&res.Potentials[0], 1))

	// Stage 2: convex hull and its stable lower part.
	var xy = make([][2]float64, len(res.Points))
	for i = range res.Points {
		xy[i] = [2]float64{res.Points[i].Comp, res.Points[i].Formation}
	}
	res.Vertices = ConvexHull(xy)
	for _, v := range LowerHull(xy) {
		if res.Points[v].Formation <= 0 {
			res.Lower = append(res.Lower, &res.Points[v])
		}
	}

	// Stage 3: hull distances.
	var comp, energy = res.HullComp(), res.HullEnergy()
	for i = range res.Points {
		var p = &res.Points[i]
		var d = distance(comp, energy, p.Comp, p.Formation)
		if math.Abs(d) <= opts.Eps {
			d = 0
		}
		if d < 0 {
			return nil, fmt.Errorf("%w: %s at x=%g by %g eV/atom", ErrBelowHull, p.Record.Label(), p.Comp, -d)
		}
		p.HullDistance = d
		p.Record.HullDistance = d
		if massErr != nil {
			p.Record.Capacity = math.NaN()
		} else {
			p.Record.Capacity, _ = structure.GravimetricCapacity(p.NumA, massB)
		}
	}

	// Stage 4: stability partition.
	for i = range res.Points {
		var p = &res.Points[i]
		if p.Endpoint || p.HullDistance <= res.Cutoff+opts.Eps {
			res.Stable = append(res.Stable, p)
		} else {
			res.Unstable = append(res.Unstable, p)
		}
	}
	sort.SliceStable(res.Stable, func(a, b int) bool {
		if res.Stable[a].Comp != res.Stable[b].Comp {
			return res.Stable[a].Comp < res.Stable[b].Comp
		}
		return res.Stable[a].Formation < res.Stable[b].Formation
	})
	logger.Info("hull: %d structures within %g eV/atom of the %s-%s hull (%d skipped)",
		len(res.Stable), res.Cutoff, res.Elements[0], res.Elements[1], len(res.Skipped))

	return res, nil
}

// endpoint annotates a chemical potential as the hull endpoint at x.
// Both endpoints have formation energy exactly 0.
func endpoint(mu *chempot.Potential, x float64) Point {
	var rec = &mu.Record
	rec.Stoich = x
	rec.NumA = structure.NumAFromStoich(x)
	rec.EnthalpyPerB = mu.EnthalpyPerAtom
	rec.VolumePerB = mu.VolumePerAtom
	rec.FormationEnthalpyPerAtom = 0

	return Point{
		Comp:         x,
		Formation:    0,
		NumA:         rec.NumA,
		EnthalpyPerB: rec.EnthalpyPerB,
		VolumePerB:   rec.VolumePerB,
		Endpoint:     true,
		Record:       rec,
	}
}

// annotate computes the hull coordinates of r and writes them onto r.
//
// Per-B quantities divide by the B atoms in the cell; a pure-A record has
// none and keeps its per-atom values, as the A chemical potential does.
func annotate(r *structure.Record, elems [2]string, pots [2]chempot.Potential) (Point, error) {
	if err := r.Validate(); err != nil {
		return Point{}, err
	}
	for _, ec := range r.Stoichiometry {
		if ec.Element != elems[0] && ec.Element != elems[1] {
			return Point{}, fmt.Errorf("%w: %s in %s", ErrForeignElement, ec.Element, r.Label())
		}
	}

	var (
		atoms = float64(r.AtomsPerFU())
		nA    = float64(r.Count(elems[0]))
		nB    = float64(r.Count(elems[1]))
	)
	r.Stoich = nA / atoms
	r.NumA = structure.NumAFromStoich(r.Stoich)
	if nB > 0 {
		r.EnthalpyPerB = r.Enthalpy / (nB * float64(r.NumFU))
		r.VolumePerB = r.CellVolume / (nB * float64(r.NumFU))
	} else {
		r.EnthalpyPerB = r.EnthalpyPerAtom
		r.VolumePerB = r.CellVolume / float64(r.NumAtoms())
	}
	r.FormationEnthalpyPerAtom = r.EnthalpyPerAtom -
		(nA/atoms)*pots[0].EnthalpyPerAtom - (nB/atoms)*pots[1].EnthalpyPerAtom

	return Point{
		Comp:         r.Stoich,
		Formation:    r.FormationEnthalpyPerAtom,
		NumA:         r.NumA,
		EnthalpyPerB: r.EnthalpyPerB,
		VolumePerB:   r.VolumePerB,
		Record:       r,
	}, nil
}
