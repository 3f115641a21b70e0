// SPDX-License-Identifier: MIT

// Package matrix provides converters between Dense and gonum's mat.Dense,
// so that factors can be handed to (or taken from) the wider gonum ecosystem.
package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const (
	opToMat   = "ToMat"
	opFromMat = "FromMat"
)

// ToMat returns a gonum *mat.Dense holding a copy of m.
//
// Errors:
//   - ErrNilMatrix.
//
// Time Complexity: O(r*c)
func ToMat(m *Dense) (*mat.Dense, error) {
	if m == nil {
		return nil, matrixErrorf(opToMat, ErrNilMatrix)
	}
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return mat.NewDense(m.r, m.c, cp), nil
}

// FromMat copies any gonum mat.Matrix into a fresh Dense with the given policy.
// The numeric policy is enforced on ingestion (NaN/Inf rejected unless disabled).
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions (empty source), ErrNaNInf.
//
// Time Complexity: O(r*c)
func FromMat(src mat.Matrix, opts ...Option) (*Dense, error) {
	if src == nil {
		return nil, matrixErrorf(opFromMat, ErrNilMatrix)
	}
	r, c := src.Dims()
	data := make([]float64, r*c)
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			data[i*c+j] = src.At(i, j)
		}
	}
	out, err := NewDenseFrom(r, c, data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s %dx%d: %w", opFromMat, r, c, err)
	}

	return out, nil
}
