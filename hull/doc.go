// Package hull builds the binary formation-energy convex hull of an A–B
// system and measures how far every structure sits above it.
//
// 🚀 What is the hull?
//
//	Each structure becomes a point (x, Ef) where x is the mole fraction of A
//	and Ef its formation energy per atom relative to the two chemical
//	potentials. The chemical potentials themselves are the endpoints (0, 0)
//	for pure B and (1, 0) for pure A. The lower boundary of the convex hull
//	of this point set is the set of thermodynamically stable phases; the
//	vertical gap between a point and that boundary is its hull distance.
//
// Algorithm Outline:
//  1. Annotate each record: x, NumA = x/(1−x), enthalpy and volume per B,
//     formation energy Ef = H/atom − Σ xₑ·μₑ.
//  2. Full convex hull with Andrew's monotone chain (collinear points are
//     not vertices), then the lower chain restricted to Ef ≤ 0, sorted by x.
//  3. Hull distance of every point: bisect-left into the lower-hull
//     compositions, take the bracketing tie line, d = Ef − line(x).
//  4. Partition by the stability cutoff (energy, or T·k_B): d ≤ cutoff is
//     stable/near-hull, everything else unstable.
//
// Boundary policy:
//   - |d| ≤ Eps (default 1e-12) is snapped to 0: the point is on the hull.
//   - d < −Eps cannot happen for a correct hull; it is reported as
//     ErrBelowHull (bad references or data), never silently clamped.
//   - Records whose elements do not belong to the pair, or whose
//     stoichiometry is malformed, are skipped with a warning, or abort the
//     build when Options.Strict is set.
//
// Complexity:
//
//	Time   = O(N log N)
//	Memory = O(N)
//
// Usage:
//
//	mu, _ := chempot.Resolve([]string{"Li", "P"}, pool, chempot.DefaultOptions())
//	opts := hull.DefaultOptions()
//	opts.Cutoff = 0.05
//	res, err := hull.Build(mu, records, opts)
package hull
