// Package matrix provides the dense row-major storage used by the LP engine.
//
// The package offers:
//
//   - Dense, a cache-friendly r×c buffer with error-returning At/Set accessors.
//   - Elementary row operations (ScaleRow, AddScaledRow, Pivot) that a simplex
//     tableau needs, operating directly on the flat buffer.
//   - No-copy row access (Row) for hot loops that must avoid interface calls.
//
// All loops run in fixed row/column order, so results are deterministic for a
// given input. Errors are package sentinels (see errors.go).
package matrix
