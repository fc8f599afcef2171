// Package metastable estimates an ensemble-averaged voltage profile of a
// binary A–B electrode from near-hull (metastable) phases by Monte-Carlo
// sampling of discharge paths.
//
// 🚀 What it does
//
// A path starts at the A-rich reference (normally pure A, NumA = +Inf) and
// repeatedly moves to a randomly chosen candidate with strictly smaller
// NumA until it reaches a fully delithiated phase (NumA = 0). Each move
// contributes a (capacity, voltage) segment computed as for the equilibrium
// curve (see package voltage), except that a move away from pure A has
// voltage 0.
// Every completed path is resampled onto a fixed capacity grid with
// StepInterp and folded into a running average.
//
// ✨ Design
//
//   - The candidate pool is an immutable slice sorted by NumA. A path's
//     remaining pool is the index range [0, hi) of phases strictly below
//     its current NumA, found by binary search, so paths share the pool
//     without copying it and same-composition polymorphs never block a
//     step.
//   - Selection is a Selector strategy; UniformMonotonic is the default
//     and draws uniformly from that range. Its retry bound only matters
//     for windows wider than the eligible range.
//   - Trials run in parallel batches of Options.BatchSize on an errgroup.
//     Trial t draws from its own RNG stream derived from (Seed, t), and
//     the batch is reduced in trial order by a single writer, so the result
//     does not depend on Options.Workers or on scheduling.
//   - Convergence is checked once per batch: the L1 change of the running
//     average must stay below Tolerance for Window consecutive batches
//     (Accumulating → Converged). Reaching MaxTrials stops the run with
//     Converged = false; that is not an error.
//
// Per-path states: AtReference → Walking → Delithiated, or Walking → Aborted
// when the selector fails or breaks monotonicity.
//
// Complexity: O(T·(P + G)) for T trials, paths of length ≤ P and a grid of
// G points; memory O(W·G) for W workers.
package metastable
