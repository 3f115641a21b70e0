// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvnmf/matrix"
	"github.com/stretchr/testify/require"
)

// tolAbs is the absolute tolerance used for floating-point comparisons.
const tolAbs = 1e-12

// hide WRAPS any Matrix to hide its concrete type from type assertions.
// Use hide{X} in tests to force the non-*Dense (fallback) paths of kernels
// and assert that fast-path == fallback.
type hide struct{ matrix.Matrix }

// MustDense ALLOCATES an r×c *Dense or fails the test (fatal on error).
//
// Complexity:
//   - Time O(r*c) zeroing by runtime, Space O(r*c).
func MustDense(t testing.TB, r, c int, opts ...matrix.Option) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c, opts...)
	if err != nil {
		t.Fatalf("NewDense(%d,%d): %v", r, c, err)
	}

	return m
}

// NewFilledDense BUILDS r×c *Dense from a row-major flat slice.
// Prefer for small exact-equality tests.
func NewFilledDense(t testing.TB, r, c int, vals []float64, opts ...matrix.Option) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDenseFrom(r, c, vals, opts...)
	if err != nil {
		t.Fatalf("NewDenseFrom(%d,%d): %v", r, c, err)
	}

	return d
}

// MustSet writes v at (i,j) or fails the test.
func MustSet(t testing.TB, m matrix.Matrix, i, j int, v float64) {
	t.Helper()
	if err := m.Set(i, j, v); err != nil {
		t.Fatalf("Set(%d,%d,%v): %v", i, j, v, err)
	}
}

// MustAt reads (i,j) or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	if err != nil {
		t.Fatalf("At(%d,%d): %v", i, j, err)
	}

	return v
}

// RandomFill FILLS a Matrix with deterministic U(lo,hi) values by seed.
// Keeps values finite to avoid NaN/Inf policy interference.
func RandomFill(t testing.TB, m matrix.Matrix, seed int64, lo, hi float64) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var i, j int
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			MustSet(t, m, i, j, lo+rng.Float64()*(hi-lo))
		}
	}
}

// RequireAllClose asserts that a and b have equal shape and |a-b| <= tol element-wise.
func RequireAllClose(t testing.TB, a, b matrix.Matrix, tol float64) {
	t.Helper()
	require.Equal(t, a.Rows(), b.Rows(), "rows")
	require.Equal(t, a.Cols(), b.Cols(), "cols")
	var i, j int
	for i = 0; i < a.Rows(); i++ {
		for j = 0; j < a.Cols(); j++ {
			av, bv := MustAt(t, a, i, j), MustAt(t, b, i, j)
			if math.Abs(av-bv) > tol {
				t.Fatalf("(%d,%d): %v vs %v (tol %v)", i, j, av, bv, tol)
			}
		}
	}
}

// MustSparse builds a SparseVector of dimension n from an index→value map.
func MustSparse(t testing.TB, n int, vals map[int]float64, opts ...matrix.Option) *matrix.SparseVector {
	t.Helper()
	v, err := matrix.NewSparseVector(n, opts...)
	require.NoError(t, err)
	for i, x := range vals {
		require.NoError(t, v.Set(i, x))
	}

	return v
}
