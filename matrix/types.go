// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by the dense kernels and the sparse
// column snapshots. Errors and options live in dedicated files
// (errors.go, options.go).
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
// Every method enforces bounds checking and returns sentinel errors on misuse.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	// Complexity: O(1).
	Rows() int

	// Cols returns the number of columns in the matrix.
	// Complexity: O(1).
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	// Complexity: O(1).
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	// Complexity: O(1).
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original.
	// Complexity: O(rows*cols).
	Clone() Matrix
}

// zeroer is implemented by matrices that carry their own near-zero threshold.
// Kernels use it to propagate the numeric policy from operands to results.
type zeroer interface {
	Zero() float64
}

// zeroOf returns the near-zero threshold carried by m, or DefaultZero.
// Complexity: O(1).
func zeroOf(m Matrix) float64 {
	if z, ok := m.(zeroer); ok {
		return z.Zero()
	}

	return DefaultZero
}
