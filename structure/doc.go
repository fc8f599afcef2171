// Package structure defines the computed crystal-structure record consumed
// by the hull, voltage and sampling packages, together with the small
// chemistry helpers they share.
//
// 🚀 What is a Record?
//
//	One relaxed structure of a binary A–B system as produced by an external
//	query layer: an identifier pair, an ordered stoichiometry of one or two
//	elements, the number of formula units in the cell, total and per-atom
//	enthalpy (eV), cell volume (Å³), an optional space group and the list of
//	source files the calculation came from.
//
//	The analysis packages annotate records in place (see Annotations):
//	  • Stoich       - mole fraction of element A, in [0,1]
//	  • NumA         - moles of A per mole of B (+Inf at pure A, 0 at pure B)
//	  • EnthalpyPerB - enthalpy normalised per mole of B
//	  • HullDistance - vertical distance above the lower convex hull (≥ 0)
//	  • Capacity     - gravimetric capacity (mAh/g) derived from NumA
//
// ✨ Helpers:
//   - MolarMass: standard atomic weights for H–Lr
//   - GravimetricCapacity: NumA → mAh/g for a given host molar mass
//   - SplitElements: "LiP" → ["Li", "P"]
//   - DecodeRecords / LoadRecords: TOML documents with [[structures]] tables
//
// Example TOML record:
//
//	[[structures]]
//	text_id = ["pretty", "parrot"]
//	num_fu = 2
//	enthalpy = -1234.5
//	enthalpy_per_atom = -154.3125
//	cell_volume = 120.4
//	space_group = "P2_1/c"
//	source = ["LiP-pretty-parrot.res"]
//	stoichiometry = [{ element = "Li", count = 1 }, { element = "P", count = 3 }]
package structure
