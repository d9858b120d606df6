// Package jobs defines the RPQ job data: release time r, processing time p and
// delivery (tail) time q of every job on a single machine.
//
// A Set is validated once at construction and is immutable afterwards:
//
//   - ids are unique (they are the only cross-reference key used by models);
//   - r ≥ 0, p > 0, q ≥ 0 for every job;
//   - the set is non-empty.
//
// Besides the data itself the package provides:
//
//   - Parse / Load for the whitespace-delimited instance format
//     (first line: job count; then one "r p q" line per job);
//   - Evaluate, which computes the left-shifted schedule of a job sequence;
//   - Schrage, the classic list-scheduling heuristic for RPQ, used to seed
//     incumbents for exact solvers.
//
// Errors (sentinel):
//
//	– ErrMalformedInstance  count mismatch, bad token, negative parameter, p = 0.
//	– ErrEmptyInstance      zero jobs (matches ErrMalformedInstance too).
//	– ErrDuplicateID        two jobs share an id.
//	– ErrInvalidSequence    a sequence is not a permutation of the set's ids.
package jobs
