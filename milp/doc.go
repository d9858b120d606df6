// Package milp solves mixed-integer linear programs by depth-first
// branch-and-bound over the lp package.
//
// Search:
//   - Each node solves the LP relaxation under the node's variable bounds.
//   - Nodes whose relaxation is infeasible, or whose bound cannot beat the
//     incumbent, are pruned. When every cost sits on an integer variable with
//     an integral coefficient, the bound is rounded up before comparison.
//   - Otherwise the most fractional integer variable (lowest index on ties) is
//     split into x ≤ ⌊v⌋ and x ≥ ⌊v⌋+1; the child nearer to v is explored first.
//
// An incumbent can be supplied up front (WithIncumbent); it is verified and
// then used for pruning from the root on.
//
// Limits: a context, a time limit and a node limit. When a limit stops the
// search the status is Unproven and the best solution found so far (if any)
// is returned. The search never hangs on cancellation: the context is
// checked before every node.
package milp
