// Package hullvolt analyses the thermodynamic stability and electrochemistry
// of binary A–B systems from computed crystal structures.
//
// 🚀 What is hullvolt?
//
//	A small set of packages that take relaxed structures of a binary system
//	(say Li–P) and answer:
//		• Which phases are stable? The lower convex hull of formation energy
//		  versus composition, and every structure's distance above it.
//		• At what voltage does the host take up the working ion? The
//		  equilibrium voltage steps along the hull.
//		• How much does the host swell? Volume per host atom along the hull.
//		• What if metastable phases form? A Monte-Carlo average over random
//		  discharge paths through near-hull structures.
//
// ✨ Layout:
//
//	structure/  - structure records, TOML decoding, molar masses, capacity
//	chempot/    - chemical potential (elemental reference) resolution
//	hull/       - monotone-chain hull, hull distances, stability cutoff
//	voltage/    - voltage step function from hull tie lines
//	volume/     - volume expansion relative to the pure host
//	metastable/ - parallel, seeded metastable path sampler
//	analysis/   - configuration (TOML + HULLVOLT_* env) and the full pipeline
//	telemetry/  - Prometheus metrics for the sampler
//	cmd/hullvolt - command line front end
//
// Quick ASCII picture of a hull with two stable compounds:
//
//	Ef  0 ●─────────────────────────●
//	       \                       /
//	        \          ○          /      ○ metastable, d > 0
//	         ●───────────────────●
//	      x=0 (B)    LiP   Li3P  x=1 (A)
//
//	go install github.com/katalvlaran/hullvolt/cmd/hullvolt@latest
package hullvolt
