package structure

import "errors"

// Sentinel errors returned by the structure package.
var (
	// ErrMalformedStoichiometry indicates a stoichiometry that is empty, longer
	// than two entries, repeats an element or carries a non-positive count.
	ErrMalformedStoichiometry = errors.New("structure: malformed stoichiometry")

	// ErrBadFormulaUnits indicates NumFU ≤ 0.
	ErrBadFormulaUnits = errors.New("structure: number of formula units must be positive")

	// ErrUnknownElement indicates an element symbol missing from the periodic table.
	ErrUnknownElement = errors.New("structure: unknown element")

	// ErrBadMolarMass indicates a non-positive host molar mass.
	ErrBadMolarMass = errors.New("structure: molar mass must be positive")
)

// BoltzmannEV is the Boltzmann constant in eV/K, used to turn a hull
// temperature into an energy cutoff.
const BoltzmannEV = 8.61733e-5

// Faraday is the Faraday constant in C/mol.
const Faraday = 96485.33289

// ElementCount is one (element, count) entry of a stoichiometry.
type ElementCount struct {
	Element string `toml:"element" json:"element"`
	Count   int    `toml:"count" json:"count"`
}

// Annotations are the derived fields the analysis attaches to a Record.
// They are zero until a hull has been built over the record.
type Annotations struct {
	Stoich                   float64
	NumA                     float64
	EnthalpyPerB             float64
	VolumePerB               float64
	FormationEnthalpyPerAtom float64
	HullDistance             float64
	Capacity                 float64
}

// Record describes one candidate structure of a binary system.
//
// Fields:
//   - ID              - human-readable identifier pair (e.g. "pretty parrot").
//   - Stoichiometry   - ordered (element, count) pairs, length 1 or 2.
//   - NumFU           - number of formula units in the cell (> 0).
//   - Enthalpy        - total cell enthalpy, eV.
//   - EnthalpyPerAtom - enthalpy per atom, eV/atom.
//   - CellVolume      - cell volume, Å³.
//   - SpaceGroup      - optional space-group label.
//   - Source          - paths of the files the record was scraped from.
type Record struct {
	ID              [2]string      `toml:"text_id" json:"text_id"`
	Stoichiometry   []ElementCount `toml:"stoichiometry" json:"stoichiometry"`
	NumFU           int            `toml:"num_fu" json:"num_fu"`
	Enthalpy        float64        `toml:"enthalpy" json:"enthalpy"`
	EnthalpyPerAtom float64        `toml:"enthalpy_per_atom" json:"enthalpy_per_atom"`
	CellVolume      float64        `toml:"cell_volume" json:"cell_volume"`
	SpaceGroup      string         `toml:"space_group,omitempty" json:"space_group,omitempty"`
	Source          []string       `toml:"source,omitempty" json:"source,omitempty"`

	Annotations `toml:"-" json:"-"`
}
