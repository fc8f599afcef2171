package structure

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Validate checks the structural contract of r:
//   - 1 ≤ len(Stoichiometry) ≤ 2, non-empty distinct symbols, counts > 0;
//   - NumFU > 0.
//
// Complexity: O(1).
func (r *Record) Validate() error {
	var n = len(r.Stoichiometry)
	if n < 1 || n > 2 {
		return fmt.Errorf("%w: %d entries in %s", ErrMalformedStoichiometry, n, r.Label())
	}
	var i int
	for i = 0; i < n; i++ {
		if r.Stoichiometry[i].Element == "" || r.Stoichiometry[i].Count <= 0 {
			return fmt.Errorf("%w: bad entry %d in %s", ErrMalformedStoichiometry, i, r.Label())
		}
	}
	if n == 2 && r.Stoichiometry[0].Element == r.Stoichiometry[1].Element {
		return fmt.Errorf("%w: repeated element %q in %s",
			ErrMalformedStoichiometry, r.Stoichiometry[0].Element, r.Label())
	}
	if r.NumFU <= 0 {
		return fmt.Errorf("%w: %s", ErrBadFormulaUnits, r.Label())
	}

	return nil
}

// AtomsPerFU returns the number of atoms in one formula unit.
func (r *Record) AtomsPerFU() int {
	var total int
	for _, ec := range r.Stoichiometry {
		total += ec.Count
	}

	return total
}

// NumAtoms returns the number of atoms in the cell.
func (r *Record) NumAtoms() int {
	return r.AtomsPerFU() * r.NumFU
}

// Count returns the per-formula-unit count of elem (0 when absent).
func (r *Record) Count(elem string) int {
	for _, ec := range r.Stoichiometry {
		if ec.Element == elem {
			return ec.Count
		}
	}

	return 0
}

// Elements returns the element symbols in stoichiometry order.
func (r *Record) Elements() []string {
	var out = make([]string, 0, len(r.Stoichiometry))
	for _, ec := range r.Stoichiometry {
		out = append(out, ec.Element)
	}

	return out
}

// MoleFraction returns the mole fraction of elem within the formula unit.
func (r *Record) MoleFraction(elem string) float64 {
	var atoms = r.AtomsPerFU()
	if atoms == 0 {
		return 0
	}

	return float64(r.Count(elem)) / float64(atoms)
}

// Formula renders the stoichiometry as a compact formula, e.g. "LiP3".
func (r *Record) Formula() string {
	var b strings.Builder
	for _, ec := range r.Stoichiometry {
		b.WriteString(ec.Element)
		if ec.Count != 1 {
			b.WriteString(strconv.Itoa(ec.Count))
		}
	}

	return b.String()
}

// Label joins the identifier pair with a space.
func (r *Record) Label() string {
	return strings.TrimSpace(r.ID[0] + " " + r.ID[1])
}

// NumAFromStoich converts a mole fraction x of A into moles of A per mole
// of B, x/(1-x). The pure-A limit (1-x == 0) is +Inf, never an error.
func NumAFromStoich(x float64) float64 {
	if 1-x == 0 {
		return math.Inf(1)
	}

	return x / (1 - x)
}

// SplitElements splits a composition string such as "LiP" or "KSn" into
// its element symbols. Each symbol starts with an upper-case letter
// followed by lower-case letters; anything else is ignored.
func SplitElements(composition string) []string {
	var (
		out []string
		cur strings.Builder
	)
	for _, ch := range composition {
		switch {
		case unicode.IsUpper(ch):
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
			cur.WriteRune(ch)
		case unicode.IsLower(ch) && cur.Len() > 0:
			cur.WriteRune(ch)
		default:
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}

	return out
}
