// Package model builds the paradigm-neutral decision model of the RPQ
// problem (single machine, release/processing/delivery times, minimise the
// makespan).
//
// The model is the classic disjunctive big-M formulation:
//
//	start[j]     ∈ [0, M]   integer, one per job
//	precedes[i,j] ∈ {0, 1}  boolean, one per ordered pair i ≠ j
//	makespan     ∈ [0, M]   integer
//
//	start[j] ≥ r_j                                    (release)
//	makespan ≥ start[j] + p_j + q_j                   (completion)
//	start[i] + p_i ≤ start[j] + M·precedes[i,j]       (disjunct i→j)
//	start[j] + p_j ≤ start[i] + M·precedes[j,i]       (disjunct j→i)
//	precedes[i,j] + precedes[j,i] = 1                  (exactly one)
//	minimise makespan
//
// An indicator equal to 1 adds M to its disjunct and so switches it off; the
// indicator equal to 0 keeps the i-before-j arc enforced. Exactly one arc of
// every pair stays enforced, hence no two jobs overlap on the machine.
//
// M is the BoundEstimator value Σ(r+p+q) (see EstimateBound). It bounds every
// start time and the makespan of any left-shifted schedule, which makes both
// the variable domains and the big-M relaxation sound.
//
// Constraints are stored in normalised linear form Σ coef·var (≤|≥|=) rhs and
// tagged with a Kind, so solver adapters can either post them verbatim or
// re-express a KindDisjunct natively (e.g., as a reified precedence).
//
// Complexity: Build is O(n²) in time and space (n(n−1)/2 constraint triples).
package model
