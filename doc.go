// Package lvnmf is a small, dependable toolkit for non-negative matrix
// factorization: given a non-negative data matrix D (m×n) and a rank k, find
// non-negative U (m×k) and V (k×n) with D ≈ U·V.
//
// 🚀 What is inside?
//
//	• matrix/   - row-major Dense matrices, 1-based SparseVector, BLAS-backed Gemm,
//	              column normalization, projection onto the non-negative orthant
//	• nmf/      - the factorization Engine: projected-gradient UpdateU,
//	              parallel coordinate-descent UpdateV, hooks, cancellation
//	• matrixio/ - "label  v1  v2 ..." text input, tab-separated factor output
//	• report/   - convergence trace and residual chart (gonum/plot)
//	• cmd/nmf   - command-line front end
//
// ✨ Guarantees
//
//   - U and V never hold a negative entry after an update.
//   - Runs are deterministic for a given seed, whatever the worker count.
//   - Library packages never log and never panic on user input; failures
//     surface as wrapped sentinel errors matched with errors.Is.
//
// Quick start:
//
//	e, err := nmf.NewFromFile("data.txt", 10, nmf.WithStepCoefficient(1e-3))
//	if err != nil { ... }
//	if err = e.Decompose(); err != nil { ... }
//	_ = matrixio.SaveFactors("result", e.D(), e.U(), e.V())
//
//	go get github.com/katalvlaran/lvnmf
package lvnmf
