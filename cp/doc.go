// Package cp is a small finite-domain constraint solver.
//
// Variables have interval domains [lo, hi] of ints; booleans are the
// domain [0, 1]. Constraints are linear, Σ coef·x (≤|≥|=) rhs, optionally
// half-reified by a literal: AddLinearIf(b, v, ...) enforces the
// constraint only while b = v, and fixes b ≠ v once the constraint can no
// longer hold.
//
// Propagation is bounds consistency: for Σ a_i·x_i ≤ rhs with minimal
// activity L, every term gets a_i·x_i ≤ rhs − (L − min(a_i·x_i)), which tightens
// the upper bound of x_i when a_i > 0 and its lower bound when a_i < 0.
// Constraints are re-queued through per-variable watch lists whenever a
// bound they read changes, and every bound change is recorded on a trail so
// backtracking restores domains exactly.
//
// Search is depth-first: unfixed booleans first (lowest index; hinted value
// first, otherwise 0), then integers (lowest index, x = lo before x ≥ lo+1).
// With an objective, every solution posts the cutoff obj ≤ best−1 so the
// search ends with a proof of optimality, or with Unproven when a limit fires.
package cp
