// SPDX-License-Identifier: MIT

// Package matrix - SparseVector: index→value storage over a fixed dimension.
//
// Purpose:
//   - Snapshot one matrix column cheaply when most entries are at or near zero,
//     so that convergence deltas (prev − cur) can be measured without dense copies.
//   - Indices are 1-based and valid in [1, Dim()]; anything else is ErrOutOfRange.
//
// Sparsity policy:
//   - Get on an absent index returns 0 (zero is a legitimate value, not "missing").
//   - Set stores verbatim regardless of magnitude; sparsity is opportunistic.
//   - Arithmetic results (Add/Sub/MulElem/Scale) are filtered after the fact:
//     a slot whose magnitude is <= Zero() is not stored in the result.
//
// Determinism:
//   - Map iteration is never observable: Do and ToDense walk indices in ascending order.
//
// Complexity quicksheet:
//   - Get/Set/Remove: O(1) average; arithmetic: O(nnz(a)+nnz(b)); norms: O(nnz); Do: O(nnz log nnz).

package matrix

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// ---------- error context tags ----------

const (
	ctxSparseGet    = "Get"
	ctxSparseSet    = "Set"
	ctxSparseRemove = "Remove"
	ctxSparseAdd    = "Add"
	ctxSparseSub    = "Sub"
	ctxSparseMul    = "MulElem"
	ctxSparseColumn = "SparseColumn"
)

// sparseErrorf wraps an error with a uniform SparseVector context.
// Complexity: O(1).
func sparseErrorf(method string, idx int, err error) error {
	return fmt.Errorf("SparseVector.%s(%d): %w", method, idx, err)
}

// SparseVector is a fixed-dimension vector storing only explicitly set or
// non-negligible entries, keyed by a single 1-based index.
type SparseVector struct {
	n              int             // dimension (>= 1)
	data           map[int]float64 // 1-based index → value
	zero           float64         // near-zero threshold for arithmetic results
	validateNaNInf bool            // reject NaN/Inf in Set when true
}

// NewSparseVector creates an empty vector of dimension n.
// Implementation:
//   - Stage 1: validate n >= 1; else ErrInvalidDimensions.
//   - Stage 2: resolve options against DefaultSparseZero / DefaultValidateNaNInf.
//
// Errors:
//   - ErrInvalidDimensions.
//
// Complexity:
//   - Time O(1), Space O(1).
func NewSparseVector(n int, opts ...Option) (*SparseVector, error) {
	if n < 1 {
		return nil, ErrInvalidDimensions
	}
	o := gatherOptions(DefaultSparseZero, opts...)

	return &SparseVector{
		n:              n,
		data:           make(map[int]float64),
		zero:           o.zero,
		validateNaNInf: o.validateNaNInf,
	}, nil
}

// newSparseLike allocates an empty vector with v's dimension and policy.
func newSparseLike(v *SparseVector) *SparseVector {
	return &SparseVector{
		n:              v.n,
		data:           make(map[int]float64),
		zero:           v.zero,
		validateNaNInf: v.validateNaNInf,
	}
}

// Dim returns the logical dimension. Complexity: O(1).
func (v *SparseVector) Dim() int { return v.n }

// Zero returns the near-zero threshold used to filter arithmetic results. Complexity: O(1).
func (v *SparseVector) Zero() float64 { return v.zero }

// NNZ returns the number of stored entries (including explicitly set zeros). Complexity: O(1).
func (v *SparseVector) NNZ() int { return len(v.data) }

// checkIndex validates 1 <= i <= Dim().
func (v *SparseVector) checkIndex(i int) error {
	if i < 1 || i > v.n {
		return ErrOutOfRange
	}

	return nil
}

// Get returns the value at index i; absent entries read as 0.
//
// Errors:
//   - ErrOutOfRange when i is outside [1, Dim()].
//
// Complexity:
//   - Time O(1) average.
func (v *SparseVector) Get(i int) (float64, error) {
	if err := v.checkIndex(i); err != nil {
		return 0, sparseErrorf(ctxSparseGet, i, err)
	}

	return v.data[i], nil
}

// Set stores x at index i verbatim, regardless of its magnitude.
//
// Errors:
//   - ErrOutOfRange when i is outside [1, Dim()].
//   - ErrNaNInf when x is not finite and the policy rejects it.
//
// Complexity:
//   - Time O(1) average.
func (v *SparseVector) Set(i int, x float64) error {
	if err := v.checkIndex(i); err != nil {
		return sparseErrorf(ctxSparseSet, i, err)
	}
	if v.validateNaNInf && isNonFinite(x) {
		return sparseErrorf(ctxSparseSet, i, ErrNaNInf)
	}
	v.data[i] = x

	return nil
}

// Remove drops the stored entry at index i (no-op when absent).
//
// Errors:
//   - ErrOutOfRange when i is outside [1, Dim()].
func (v *SparseVector) Remove(i int) error {
	if err := v.checkIndex(i); err != nil {
		return sparseErrorf(ctxSparseRemove, i, err)
	}
	delete(v.data, i)

	return nil
}

// Clear drops every stored entry; the dimension is kept.
func (v *SparseVector) Clear() { clear(v.data) }

// indices returns the stored indices in ascending order.
func (v *SparseVector) indices() []int {
	return slices.Sorted(maps.Keys(v.data))
}

// Do visits stored entries in ascending index order; stops when fn returns false.
// Complexity: O(nnz log nnz).
func (v *SparseVector) Do(fn func(i int, x float64) bool) {
	for _, i := range v.indices() {
		if !fn(i, v.data[i]) {
			return
		}
	}
}

// ToDense materializes the vector as a 0-based slice of length Dim().
// Entry i of the vector lands at position i-1.
// Complexity: O(Dim()).
func (v *SparseVector) ToDense() []float64 {
	out := make([]float64, v.n)
	for i, x := range v.data {
		out[i-1] = x
	}

	return out
}

// combine computes out[i] = f(v[i], w[i]) over the union of stored indices of v and w
// and keeps only results that pass the non-zero test under v's threshold.
// Slots absent from both operands are f(0,0) == 0 for every kernel used here.
//
// Errors:
//   - ErrNilMatrix (w nil), ErrDimensionMismatch (Dim differs).
//
// Complexity:
//   - Time O(nnz(v)+nnz(w)), Space O(nnz(result)).
func (v *SparseVector) combine(w *SparseVector, method string, f func(a, b float64) float64) (*SparseVector, error) {
	if w == nil {
		return nil, sparseErrorf(method, 0, ErrNilMatrix)
	}
	if w.n != v.n {
		return nil, fmt.Errorf("SparseVector.%s: dim %d vs %d: %w", method, v.n, w.n, ErrDimensionMismatch)
	}
	out := newSparseLike(v)
	apply := func(i int) {
		if _, done := out.data[i]; done {
			return
		}
		r := f(v.data[i], w.data[i])
		if nearZero(r, out.zero) {
			return // omitted from storage
		}
		out.data[i] = r
	}
	for i := range v.data {
		apply(i)
	}
	for i := range w.data {
		apply(i)
	}

	return out, nil
}

// Add returns v + w as a new vector (near-zero results omitted).
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func (v *SparseVector) Add(w *SparseVector) (*SparseVector, error) {
	return v.combine(w, ctxSparseAdd, func(a, b float64) float64 { return a + b })
}

// Sub returns v − w as a new vector (near-zero results omitted).
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func (v *SparseVector) Sub(w *SparseVector) (*SparseVector, error) {
	return v.combine(w, ctxSparseSub, func(a, b float64) float64 { return a - b })
}

// MulElem returns the element-wise product v ⊙ w as a new vector.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func (v *SparseVector) MulElem(w *SparseVector) (*SparseVector, error) {
	return v.combine(w, ctxSparseMul, func(a, b float64) float64 { return a * b })
}

// Scale returns t·v as a new vector (near-zero results omitted).
// Complexity: O(nnz).
func (v *SparseVector) Scale(t float64) *SparseVector {
	out := newSparseLike(v)
	for i, x := range v.data {
		if r := x * t; !nearZero(r, out.zero) {
			out.data[i] = r
		}
	}

	return out
}

// Clone returns a filtered copy, i.e. Scale(1).
// Complexity: O(nnz).
func (v *SparseVector) Clone() *SparseVector { return v.Scale(1) }

// values returns the stored values in ascending index order.
func (v *SparseVector) values() []float64 {
	idx := v.indices()
	vals := make([]float64, len(idx))
	for k, i := range idx {
		vals[k] = v.data[i]
	}

	return vals
}

// L2Norm returns sqrt(Σ v[i]²); absent slots contribute 0.
// Complexity: O(nnz log nnz).
func (v *SparseVector) L2Norm() float64 {
	return floats.Norm(v.values(), 2)
}

// MaxAbsNorm returns max |v[i]|; 0 for a vector with no stored entries.
// Complexity: O(nnz log nnz).
func (v *SparseVector) MaxAbsNorm() float64 {
	return floats.Norm(v.values(), math.Inf(1))
}

// Normalize returns an L2-unit copy; a vector whose norm fails the non-zero
// test is returned as an unchanged copy.
// Complexity: O(nnz log nnz).
func (v *SparseVector) Normalize() *SparseVector {
	norm := v.L2Norm()
	if nearZero(norm, v.zero) {
		return v.Clone()
	}

	return v.Scale(1 / norm)
}

// SparseColumn snapshots column col of m as a SparseVector of dimension Rows().
// Row x is stored at index x+1, and only entries passing the non-zero test under
// m.Zero() are materialized. The vector inherits m's threshold.
//
// Errors:
//   - ErrOutOfRange when col is outside [0, Cols()).
//
// Complexity:
//   - Time O(r), Space O(nnz).
func (m *Dense) SparseColumn(col int) (*SparseVector, error) {
	if col < 0 || col >= m.c {
		return nil, denseErrorf(ctxSparseColumn, 0, col, ErrOutOfRange)
	}
	sv := &SparseVector{
		n:              m.r,
		data:           make(map[int]float64),
		zero:           m.zero,
		validateNaNInf: m.validateNaNInf,
	}
	var x float64
	for i := 0; i < m.r; i++ {
		x = m.data[i*m.c+col]
		if !nearZero(x, m.zero) {
			sv.data[i+1] = x
		}
	}

	return sv, nil
}
