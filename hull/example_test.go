package hull_test

import (
	"fmt"

	"github.com/katalvlaran/hullvolt/chempot"
	"github.com/katalvlaran/hullvolt/hull"
	"github.com/katalvlaran/hullvolt/structure"
)

// ExampleBuild builds the Li–P hull of three compounds with explicit
// chemical potentials and prints the hull distance of every point.
func ExampleBuild() {
	var pots = chempot.FromEnergies([2]string{"Li", "P"}, [2]float64{-1.9, -5.4})
	var records = []structure.Record{
		{
			ID:              [2]string{"lip", "p21c"},
			Stoichiometry:   []structure.ElementCount{{Element: "Li", Count: 1}, {Element: "P", Count: 1}},
			NumFU:           8,
			EnthalpyPerAtom: -4.0,
		},
		{
			ID:              [2]string{"li3p", "p63mmc"},
			Stoichiometry:   []structure.ElementCount{{Element: "Li", Count: 3}, {Element: "P", Count: 1}},
			NumFU:           2,
			EnthalpyPerAtom: -3.1,
		},
		{
			ID:              [2]string{"lip", "metastable"},
			Stoichiometry:   []structure.ElementCount{{Element: "Li", Count: 1}, {Element: "P", Count: 1}},
			NumFU:           4,
			EnthalpyPerAtom: -3.9,
		},
	}
	for i := range records {
		records[i].Enthalpy = records[i].EnthalpyPerAtom * float64(records[i].NumAtoms())
	}

	res, err := hull.Build(pots, records, hull.DefaultOptions())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, p := range res.Points {
		fmt.Printf("%-16s x=%.2f Ef=%+.3f d=%.3f\n", p.Record.Label(), p.Comp, p.Formation, p.HullDistance)
	}
	fmt.Println("stable:", len(res.Stable), "unstable:", len(res.Unstable))

	// Output:
	// command line     x=0.00 Ef=+0.000 d=0.000
	// lip p21c         x=0.50 Ef=-0.350 d=0.000
	// li3p p63mmc      x=0.75 Ef=-0.325 d=0.000
	// lip metastable   x=0.50 Ef=-0.250 d=0.100
	// command line     x=1.00 Ef=+0.000 d=0.000
	// stable: 4 unstable: 1
}
