// SPDX-License-Identifier: MIT

// Package matrix - elementary row operations on Dense.
//
// These kernels are the building blocks of Gauss-Jordan elimination and of the
// simplex tableau pivot. They operate directly on the flat buffer (no At/Set
// round-trips) and visit rows and columns in fixed ascending order.

package matrix

import "math"

const (
	opScaleRow     = "ScaleRow"
	opAddScaledRow = "AddScaledRow"
	opPivot        = "Pivot"
)

// ScaleRow multiplies row i by f in place.
//
// Errors:
//   - ErrOutOfRange for an invalid row; ErrNaNInf when f is not finite.
//
// Complexity: O(c).
func (m *Dense) ScaleRow(i int, f float64) error {
	if i < 0 || i >= m.r {
		return denseErrorf(opScaleRow, i, 0, ErrOutOfRange)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return denseErrorf(opScaleRow, i, 0, ErrNaNInf)
	}
	var (
		base = i * m.c
		j    int
	)
	for j = 0; j < m.c; j++ {
		m.data[base+j] *= f
	}

	return nil
}

// AddScaledRow performs row[dst] += f * row[src] in place.
//
// Errors:
//   - ErrOutOfRange for invalid rows; ErrNaNInf when f is not finite.
//
// Complexity: O(c).
func (m *Dense) AddScaledRow(dst, src int, f float64) error {
	if dst < 0 || dst >= m.r || src < 0 || src >= m.r {
		return denseErrorf(opAddScaledRow, dst, src, ErrOutOfRange)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return denseErrorf(opAddScaledRow, dst, src, ErrNaNInf)
	}
	if f == 0 {
		return nil
	}
	var (
		db = dst * m.c
		sb = src * m.c
		j  int
	)
	for j = 0; j < m.c; j++ {
		m.data[db+j] += f * m.data[sb+j]
	}

	return nil
}

// Pivot performs a Gauss-Jordan pivot on element (row, col): row is divided by
// the pivot value, then the pivot column is eliminated from every other row.
// Entries whose magnitude drops to zeroTol or below are snapped to exactly 0,
// which keeps the degenerate tableaus of big-M models free of round-off noise.
//
// Errors:
//   - ErrOutOfRange for invalid coordinates.
//   - ErrSingular when |pivot| <= zeroTol.
//
// Complexity: O(r*c).
func (m *Dense) Pivot(row, col int, zeroTol float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(opPivot, row, col, err)
	}
	pv := m.data[off]
	if math.Abs(pv) <= zeroTol {
		return denseErrorf(opPivot, row, col, ErrSingular)
	}

	var (
		pb   = row * m.c
		i, j int
		base int
		f    float64
	)
	// Normalize the pivot row.
	for j = 0; j < m.c; j++ {
		m.data[pb+j] /= pv
		if math.Abs(m.data[pb+j]) <= zeroTol {
			m.data[pb+j] = 0
		}
	}
	m.data[off] = 1

	// Eliminate the pivot column from all other rows.
	for i = 0; i < m.r; i++ {
		if i == row {
			continue
		}
		base = i * m.c
		f = m.data[base+col]
		if f == 0 {
			continue
		}
		for j = 0; j < m.c; j++ {
			m.data[base+j] -= f * m.data[pb+j]
			if math.Abs(m.data[base+j]) <= zeroTol {
				m.data[base+j] = 0
			}
		}
		m.data[base+col] = 0
	}

	return nil
}
