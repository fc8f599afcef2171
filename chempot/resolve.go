package chempot

import (
	"fmt"

	"github.com/katalvlaran/hullvolt/structure"
)

// Resolve returns the chemical potentials of elements[0] (A, the working
// ion) and elements[1] (B, the host), in that order.
//
// Explicit opts.Energies take precedence over the pool; see FromEnergies
// and FromPool for the two policies.
//
// Complexity: O(len(pool)).
func Resolve(elements []string, pool []structure.Record, opts Options) ([2]Potential, error) {
	var (
		pair [2]string
		err  error
	)
	if pair, err = validateElements(elements); err != nil {
		return [2]Potential{}, err
	}
	if len(opts.Energies) > 0 {
		if len(opts.Energies) != 2 {
			return [2]Potential{}, fmt.Errorf("%w: got %d", ErrBadEnergyCount, len(opts.Energies))
		}

		return FromEnergies(pair, [2]float64{opts.Energies[0], opts.Energies[1]}), nil
	}

	return FromPool(pair, pool)
}

// FromEnergies wraps explicit per-atom energies as degenerate potentials.
// A chemical potential is a formation-energy reference and must be ≤ 0,
// so positive inputs are negated.
func FromEnergies(elements [2]string, energies [2]float64) [2]Potential {
	var (
		out [2]Potential
		i   int
	)
	for i = 0; i < 2; i++ {
		var e = energies[i]
		if e > 0 {
			e = -e
		}
		out[i] = Potential{
			Element:         elements[i],
			EnthalpyPerAtom: e,
			Record: structure.Record{
				ID:              [2]string{"command", "line"},
				Stoichiometry:   []structure.ElementCount{{Element: elements[i], Count: 1}},
				NumFU:           1,
				Enthalpy:        e,
				EnthalpyPerAtom: e,
				SpaceGroup:      "xxx",
			},
		}
	}

	return out
}

// FromPool selects, for each element, the single-element record with the
// lowest enthalpy per atom. Ties keep the first record in pool order.
// Records that fail Validate are not candidates.
//
// Complexity: O(len(pool)).
func FromPool(elements [2]string, pool []structure.Record) ([2]Potential, error) {
	var (
		out [2]Potential
		i   int
	)
	for i = 0; i < 2; i++ {
		var best = -1
		var j int
		for j = range pool {
			if !isElemental(&pool[j], elements[i]) {
				continue
			}
			if best < 0 || pool[j].EnthalpyPerAtom < pool[best].EnthalpyPerAtom {
				best = j
			}
		}
		if best < 0 {
			return [2]Potential{}, fmt.Errorf("%w: %s", ErrNoCandidate, elements[i])
		}
		var rec = pool[best]
		rec.Stoichiometry = append([]structure.ElementCount(nil), rec.Stoichiometry...)
		out[i] = Potential{
			Element:         elements[i],
			EnthalpyPerAtom: rec.EnthalpyPerAtom,
			VolumePerAtom:   rec.CellVolume / float64(rec.NumAtoms()),
			Record:          rec,
		}
	}

	return out, nil
}

// isElemental reports whether r is a valid single-element record of elem.
func isElemental(r *structure.Record, elem string) bool {
	if r.Validate() != nil {
		return false
	}

	return len(r.Stoichiometry) == 1 && r.Stoichiometry[0].Element == elem
}

// validateElements enforces the binary-system contract.
func validateElements(elements []string) ([2]string, error) {
	if len(elements) != 2 {
		return [2]string{}, fmt.Errorf("%w: got %d", ErrElementCount, len(elements))
	}
	if elements[0] == "" || elements[1] == "" || elements[0] == elements[1] {
		return [2]string{}, fmt.Errorf("%w: %q", ErrElementCount, elements)
	}

	return [2]string{elements[0], elements[1]}, nil
}
