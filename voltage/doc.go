// Package voltage derives the equilibrium voltage step function of a binary
// A–B electrode from its stable convex-hull phases.
//
// 🚀 What it does
//
// Given the stable compositions x (mole fraction of the working ion A,
// strictly increasing from 0 to 1) and the enthalpy per B of each phase,
// Compute converts every x to n = x/(1−x) moles of A per B and walks the
// tie lines from the A-rich end toward pure B:
//
//	V_i = −(E_i − E_{i−1}) / (n_i − n_{i−1}) + μ_A
//
// The segment whose A-rich end is pure A (n = +Inf) has a zero slope and
// evaluates to μ_A. The terminal
// point repeats the last voltage at n = 0, so the curve is a right-continuous
// step function of gravimetric capacity, ordered from the A-richest phase to
// the fully discharged host.
//
// ✨ Diagnostics
//
// A thermodynamically sane hull gives voltages that never rise with
// capacity. That is not enforced: Curve.Monotonic reports whether it holds
// and Curve.Violations lists the offending steps.
//
// Complexity: O(H) for H hull phases.
package voltage
