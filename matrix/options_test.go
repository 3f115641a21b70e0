// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvnmf/matrix"
	"github.com/stretchr/testify/require"
)

// 1) TestDefaultOptions_Documented verifies that NewMatrixOptions() equals documented defaults.
func TestDefaultOptions_Documented(t *testing.T) {
	o := matrix.NewMatrixOptions()
	require.Equal(t, matrix.DefaultZero, o.Zero())
	require.Equal(t, matrix.DefaultValidateNaNInf, o.ValidateNaNInf())

	v, err := matrix.NewSparseVector(3)
	require.NoError(t, err)
	require.Equal(t, matrix.DefaultSparseZero, v.Zero())
}

// 2) TestNewMatrixOptions_LastWriterWins ensures options apply in order.
func TestNewMatrixOptions_LastWriterWins(t *testing.T) {
	o := matrix.NewMatrixOptions(matrix.WithNoValidateNaNInf(), matrix.WithValidateNaNInf())
	require.True(t, o.ValidateNaNInf())

	o = matrix.NewMatrixOptions(matrix.WithZero(1), matrix.WithZero(0.25), nil)
	require.Equal(t, 0.25, o.Zero())
}

// 3) TestWithZero_PanicsOnNonsense checks the programmer-error guard.
func TestWithZero_PanicsOnNonsense(t *testing.T) {
	require.Panics(t, func() { matrix.WithZero(-1) })
	require.Panics(t, func() { matrix.WithZero(math.NaN()) })
	require.Panics(t, func() { matrix.WithZero(math.Inf(1)) })
	require.NotPanics(t, func() { matrix.WithZero(0) })
}

// 4) TestZeroPropagatesToResults verifies results inherit the first operand's policy.
func TestZeroPropagatesToResults(t *testing.T) {
	a := MustDense(t, 2, 2, matrix.WithZero(1e-3))
	b := MustDense(t, 2, 2)

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	require.Equal(t, 1e-3, sum.Zero())

	p, err := matrix.Mul(b, a)
	require.NoError(t, err)
	require.Equal(t, matrix.DefaultZero, p.Zero())

	col, err := a.SparseColumn(0)
	require.NoError(t, err)
	require.Equal(t, 1e-3, col.Zero())
}
