package structure

import (
	"fmt"
	"math"
)

// molarMasses holds standard atomic weights in g/mol (IUPAC conventional
// values; mass number of the longest-lived isotope for elements without a
// stable one).
var molarMasses = map[string]float64{
	"H": 1.008, "He": 4.002602, "Li": 6.94, "Be": 9.0121831, "B": 10.81,
	"C": 12.011, "N": 14.007, "O": 15.999, "F": 18.998403163, "Ne": 20.1797,
	"Na": 22.98976928, "Mg": 24.305, "Al": 26.9815385, "Si": 28.085, "P": 30.973761998,
	"S": 32.06, "Cl": 35.45, "Ar": 39.948, "K": 39.0983, "Ca": 40.078,
	"Sc": 44.955908, "Ti": 47.867, "V": 50.9415, "Cr": 51.9961, "Mn": 54.938044,
	"Fe": 55.845, "Co": 58.933194, "Ni": 58.6934, "Cu": 63.546, "Zn": 65.38,
	"Ga": 69.723, "Ge": 72.630, "As": 74.921595, "Se": 78.971, "Br": 79.904,
	"Kr": 83.798, "Rb": 85.4678, "Sr": 87.62, "Y": 88.90584, "Zr": 91.224,
	"Nb": 92.90637, "Mo": 95.95, "Tc": 98, "Ru": 101.07, "Rh": 102.90550,
	"Pd": 106.42, "Ag": 107.8682, "Cd": 112.414, "In": 114.818, "Sn": 118.710,
	"Sb": 121.760, "Te": 127.60, "I": 126.90447, "Xe": 131.293, "Cs": 132.90545196,
	"Ba": 137.327, "La": 138.90547, "Ce": 140.116, "Pr": 140.90766, "Nd": 144.242,
	"Pm": 145, "Sm": 150.36, "Eu": 151.964, "Gd": 157.25, "Tb": 158.92535,
	"Dy": 162.500, "Ho": 164.93033, "Er": 167.259, "Tm": 168.93422, "Yb": 173.045,
	"Lu": 174.9668, "Hf": 178.49, "Ta": 180.94788, "W": 183.84, "Re": 186.207,
	"Os": 190.23, "Ir": 192.217, "Pt": 195.084, "Au": 196.966569, "Hg": 200.592,
	"Tl": 204.38, "Pb": 207.2, "Bi": 208.98040, "Po": 209, "At": 210,
	"Rn": 222, "Fr": 223, "Ra": 226, "Ac": 227, "Th": 232.0377,
	"Pa": 231.03588, "U": 238.02891, "Np": 237, "Pu": 244, "Am": 243,
	"Cm": 247, "Bk": 247, "Cf": 251, "Es": 252, "Fm": 257,
	"Md": 258, "No": 259, "Lr": 262,
}

// MolarMass returns the standard atomic weight of symbol in g/mol.
func MolarMass(symbol string) (float64, error) {
	m, ok := molarMasses[symbol]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownElement, symbol)
	}

	return m, nil
}

// GravimetricCapacity converts numA moles of working ion per mole of host
// into a gravimetric capacity in mAh/g:
//
//	Q = numA · F / (3.6 · M_host)
//
// numA = +Inf (pure working ion) maps to +Inf.
//
// Complexity: O(1).
func GravimetricCapacity(numA, molarMassB float64) (float64, error) {
	if !(molarMassB > 0) || math.IsInf(molarMassB, 0) {
		return 0, ErrBadMolarMass
	}
	if math.IsInf(numA, 1) {
		return math.Inf(1), nil
	}

	return numA * Faraday / (3.6 * molarMassB), nil
}

// GravimetricCapacities applies GravimetricCapacity element-wise.
func GravimetricCapacities(numA []float64, molarMassB float64) ([]float64, error) {
	var out = make([]float64, len(numA))
	var (
		i   int
		err error
	)
	for i = range numA {
		if out[i], err = GravimetricCapacity(numA[i], molarMassB); err != nil {
			return nil, err
		}
	}

	return out, nil
}
