// SPDX-License-Identifier: MIT

// Package matrix provides the numeric containers behind the factorization engine.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with safe accessors (At/Set return
//     errors, never panic) and a per-instance numeric policy: a near-zero
//     threshold and an optional finite-only guard.
//   - Element-wise kernels (Add, Sub, Hadamard, Scale) that clean their result:
//     any entry whose magnitude is at or below the threshold becomes exactly 0.
//   - Gemm, the multiply-accumulate C := alpha·op(A)·op(B) + beta·C, backed by
//     gonum's blas64; Mul and Transpose are thin conveniences around it.
//   - In-place transforms used by the NMF update steps:
//     NormalizeColumns, ProjectNonNegative and Clean.
//   - SparseVector, a 1-based index→value vector used to snapshot a column and
//     measure convergence deltas with L2Norm and MaxAbsNorm.
//   - ToMat / FromMat bridges to gonum's mat package.
//
// Sentinel errors live in errors.go and are always matched with errors.Is;
// every kernel wraps them with an operation tag.
//
// See the examples in this package for usage patterns.
package matrix
