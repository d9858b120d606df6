// Package solver turns a model.DecisionModel into a solve by one of two
// engine paradigms and normalises what comes back.
//
// Adapters:
//   - LinearInteger posts every constraint verbatim (big-M rows included) to
//     the milp engine: LP relaxation plus branch-and-bound.
//   - ConstraintPropagation posts the model to the cp engine. With
//     EncodingBigM the rows go in verbatim; with EncodingNative every
//     disjunct becomes the half-reified precedence
//     precedes[i,j] = 0 ⇒ start[i] + p_i ≤ start[j], which has the same feasible
//     set and no M.
//
// Both adapters read M and job data only from the model; neither recomputes
// the bound. Every assignment an engine returns is re-checked against the
// model, and a failing check is reported as ErrInconsistentAssignment.
//
// SolveAll runs several adapters concurrently on one read-only model.
// Escalate re-runs an Unproven solve with a larger time budget.
package solver
