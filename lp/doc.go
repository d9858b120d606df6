// Package lp solves small dense linear programs
//
//	minimise   c·x
//	subject to a_i·x (≤|≥|=) b_i   for every row i
//	           lo ≤ x ≤ hi
//
// with the two-phase tableau simplex method.
//
// Storage and pivoting are delegated to matrix.Dense: the tableau is one
// row-major buffer whose last row is the reduced-cost row, and every basis
// change is a single matrix.Pivot (Gauss-Jordan) call.
//
// Algorithm:
//
//  1. Lower bounds are shifted out (x = y + lo, y ≥ 0); finite upper bounds
//     become explicit ≤ rows.
//  2. Rows are negated where needed so every right-hand side is ≥ 0, then
//     receive a slack (≤), a surplus plus an artificial (≥), or an artificial (=).
//  3. Phase 1 minimises the sum of artificials; a positive optimum means the
//     problem is infeasible. Artificials left in the basis at zero are
//     pivoted out where possible.
//  4. Phase 2 minimises c·y with artificial columns barred from entering.
//
// Entering and leaving variables are chosen with Bland's rule (lowest index),
// so the method terminates on degenerate problems, which the big-M scheduling
// relaxations produce in abundance.
//
// Complexity: O(iterations · rows · cols) time, O(rows · cols) memory.
package lp
