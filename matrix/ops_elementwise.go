// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small, *private* in-place element-wise kernels (ew*) on *Dense to avoid
//     duplicating tight loops across higher-level ops (normalization, projection, cleaning).
//   - Keep all loops deterministic and cache-friendly on the flat row-major buffer.
//
// Design:
//   - All ew* are UNEXPORTED by design (internal micro-kernels).
//   - Column kernels address column j through a strided blas64.Vector (Inc == Cols).
//
// Determinism & Performance:
//   - Fixed loop orders (flat 0..n-1 or i=0..r-1 for a column).
//   - No allocations; O(r*c) time for whole-matrix kernels, O(r) for column kernels.

package matrix

import (
	"gonum.org/v1/gonum/blas/blas64"
)

// ewSnapInPlace replaces every |v| <= zero with exactly 0.
// Time: O(r*c). Space: O(1).
func ewSnapInPlace(d *Dense, zero float64) {
	for idx, v := range d.data {
		d.data[idx] = snap(v, zero)
	}
}

// ewClampNonNegative replaces every negative entry with 0; non-negative entries are untouched.
// Time: O(r*c). Space: O(1).
func ewClampNonNegative(d *Dense) {
	for idx, v := range d.data {
		if v < 0 {
			d.data[idx] = 0
		}
	}
}

// ewColumn returns column j of d as a strided BLAS vector sharing d's storage.
// Time: O(1). Space: O(1).
func ewColumn(d *Dense, j int) blas64.Vector {
	return blas64.Vector{N: d.r, Inc: d.c, Data: d.data[j:]}
}

// ewColumnSumSquares returns Σ_i d[i,j]².
// Time: O(r). Space: O(1).
func ewColumnSumSquares(d *Dense, j int) float64 {
	col := ewColumn(d, j)

	return blas64.Dot(col, col)
}

// ewDivideColumnSnap divides column j by s and snaps near-zero quotients to 0.
// Time: O(r). Space: O(1).
//
// AI-Hint: s must be strictly positive; callers guard degenerate columns first.
func ewDivideColumnSnap(d *Dense, j int, s, zero float64) {
	var i, off int
	for i = 0; i < d.r; i++ {
		off = i*d.c + j
		d.data[off] = snap(d.data[off]/s, zero)
	}
}
