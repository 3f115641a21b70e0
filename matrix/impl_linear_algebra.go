// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation,
// including element-wise addition, subtraction, Hadamard product, scalar
// scaling, transpose, and the generalized multiply-accumulate Gemm.
// All functions perform strict fail-fast validation and return clear errors
// on dimension mismatches.
//
// Purpose:
//   - Declare canonical linear-algebra kernels used by the factorization engine.
//   - Define operation tags and shared constants for determinism and error reporting.
//
// Notes:
//   - Element-wise kernels (Add/Sub/Scale/Hadamard) always write into a fresh
//     result and apply the clean-up step: |v| <= zero is stored as exactly 0,
//     where zero is the threshold carried by the first operand.
//   - Gemm delegates to gonum's blas64 and does NOT clean its accumulator;
//     its contract is the exact multiply-accumulate.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opGemm      = "Gemm"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opHadamard  = "Hadamard"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting across facades.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Complexity:
//   - Time O(1), Space O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// binaryClean computes out[i,j] = snap(f(a[i,j], b[i,j])) into a fresh Dense.
// Internal helper for Add/Sub/Hadamard to share validation, allocation, and fast-path.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b). Allocate result with a's policy.
//   - Stage 2: Fast-path if both are *Dense - single flat loop 0..n-1.
//     Otherwise, fallback At with fixed i→j order.
//
// Behavior highlights:
//   - Inputs remain immutable; a failed call leaves no partial result behind.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, wrapped At errors.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func binaryClean(a, b Matrix, opTag string, f func(x, y float64) float64) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	rows, cols := a.Rows(), a.Cols()
	res, err := newDenseLike(rows, cols, a)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	zero := res.zero

	// Fast path: *Dense with *Dense → single flat loop.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range res.data { // deterministic 0..n-1
				res.data[idx] = snap(f(da.data[idx], db.data[idx]), zero)
			}

			return res, nil
		}
	}

	// Fallback: interface path with fixed i→j order.
	var i, j int
	var av, bv float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			av, err = a.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opTag, err)
			}
			bv, err = b.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opTag, err)
			}
			res.data[i*cols+j] = snap(f(av, bv), zero)
		}
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
// Implementation:
//   - Stage 1: Validate both operands are non-nil and have identical shapes.
//   - Stage 2: Sum element-wise and snap near-zero results to 0.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Add(a, b Matrix) (*Dense, error) {
	return binaryClean(a, b, opAdd, func(x, y float64) float64 { return x + y })
}

// Sub computes the element-wise difference C = A - B and returns a fresh Dense result.
// Same contract as Add.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Sub(a, b Matrix) (*Dense, error) {
	return binaryClean(a, b, opSub, func(x, y float64) float64 { return x - y })
}

// Hadamard computes the elementwise product (a ⊙ b) with a fresh Dense result.
// Both inputs must be non-nil and have identical shapes; operands are not mutated.
//
// Notes:
//   - Hadamard ≠ matrix multiplication; it is elementwise. Use Gemm/Mul for A×B.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Hadamard(a, b Matrix) (*Dense, error) {
	return binaryClean(a, b, opHadamard, func(x, y float64) float64 { return x * y })
}

// Scale returns a new matrix whose elements are snap(alpha * m[i,j]).
// Input is validated non-nil; the original matrix is never mutated.
//
// Implementation:
//   - Stage 1: ValidateNotNil(m). Allocate Dense(rows, cols) with m's policy.
//   - Stage 2: If *Dense, flat multiply; else generic i→j At scaling.
//
// Behavior highlights:
//   - alpha = 0 yields an explicit zero matrix with the same shape.
//   - Scale(Scale(A, t), 1/t) reproduces A up to the snap-to-zero tolerance.
//
// Errors:
//   - ErrNilMatrix (from ValidateNotNil).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := newDenseLike(rows, cols, m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	zero := res.zero

	if dm, ok := m.(*Dense); ok {
		for idx, v := range dm.data {
			res.data[idx] = snap(v*alpha, zero)
		}

		return res, nil
	}

	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			v, err = m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opScale, err)
			}
			res.data[i*cols+j] = snap(v*alpha, zero)
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Input is validated non-nil; the original matrix is never mutated.
//
// Errors:
//   - ErrNilMatrix (from ValidateNotNil).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the returned matrix.
//
// AI-Hints:
//   - Gemm accepts transpose flags; prefer them over materializing mᵀ.
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := newDenseLike(cols, rows, m) // dims flipped
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int
	if dm, ok := m.(*Dense); ok {
		// data[i*cols + j] → res.data[j*rows + i]
		var baseSrc int
		for i = 0; i < rows; i++ {
			baseSrc = i * cols
			for j = 0; j < cols; j++ {
				res.data[j*rows+i] = dm.data[baseSrc+j]
			}
		}

		return res, nil
	}

	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			v, err = m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
			res.data[j*rows+i] = v
		}
	}

	return res, nil
}

// Gemm performs the generalized multiply-accumulate C := alpha·op(A)·op(B) + beta·C in place.
// MAIN DESCRIPTION:
//   - Single primitive behind every product of the factorization (U·G, V·Vᵀ, Uᵀ·D, Uᵀ·U, ...).
//
// Implementation:
//   - Stage 1: ValidateGemm (nil, conformability of op(A), op(B), C; aliasing).
//   - Stage 2: map transpose flags onto blas.Trans / blas.NoTrans.
//   - Stage 3: delegate to blas64.Gemm on the row-major backing buffers.
//
// Behavior highlights:
//   - beta == 0 ignores the previous content of C (BLAS semantics).
//   - No snap-to-zero on C: the result is the exact multiply-accumulate.
//
// Inputs:
//   - transA, transB: whether to use Aᵀ / Bᵀ.
//   - alpha, beta: scalars.
//   - a, b: operands; c: accumulator (mutated).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAliased.
//
// Complexity:
//   - Time O(m*k*n), Space O(1) beyond C.
//
// AI-Hints:
//   - blas64.Use can swap in an optimized (e.g., cgo/OpenBLAS) implementation globally.
func Gemm(transA, transB bool, alpha float64, a, b *Dense, beta float64, c *Dense) error {
	if err := ValidateGemm(transA, transB, a, b, c); err != nil {
		return matrixErrorf(opGemm, err)
	}

	blas64.Gemm(blasTranspose(transA), blasTranspose(transB), alpha, a.RawMatrix(), b.RawMatrix(), beta, c.RawMatrix())

	return nil
}

// blasTranspose maps a boolean flag onto the BLAS transpose selector.
func blasTranspose(t bool) blas.Transpose {
	if t {
		return blas.Trans
	}

	return blas.NoTrans
}

// Mul returns the fresh product A×B, i.e. Gemm(false, false, 1, A, B, 0, C).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (A.Cols != B.Rows).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b *Dense) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := newDenseLike(a.r, b.c, a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err = Gemm(false, false, 1, a, b, 0, res); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	return res, nil
}
