// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvnmf/matrix"
	"github.com/stretchr/testify/require"
)

func TestNormalizeColumns_UnitNorms(t *testing.T) {
	a := NewFilledDense(t, 2, 3, []float64{
		3, 0, 1,
		4, 0, 1,
	})
	require.NoError(t, matrix.NormalizeColumns(a))

	norms, err := matrix.ColumnNorms(a)
	require.NoError(t, err)
	require.InDelta(t, 1.0, norms[0], tolAbs)
	require.Zero(t, norms[1]) // degenerate column left untouched
	require.InDelta(t, 1.0, norms[2], tolAbs)

	require.InDelta(t, 0.6, MustAt(t, a, 0, 0), tolAbs)
	require.InDelta(t, 0.8, MustAt(t, a, 1, 0), tolAbs)
	require.InDelta(t, 1/math.Sqrt2, MustAt(t, a, 0, 2), tolAbs)
}

func TestNormalizeColumns_NearZeroColumnUnchanged(t *testing.T) {
	// squared norm 2e-10 <= 1e-8: the column counts as degenerate
	a := NewFilledDense(t, 2, 1, []float64{1e-5, 1e-5})
	require.NoError(t, matrix.NormalizeColumns(a))
	require.Equal(t, 1e-5, MustAt(t, a, 0, 0))
	require.Equal(t, 1e-5, MustAt(t, a, 1, 0))

	require.ErrorIs(t, matrix.NormalizeColumns(nil), matrix.ErrNilMatrix)
}

func TestProjectNonNegative(t *testing.T) {
	a := NewFilledDense(t, 2, 2, []float64{-1, 2, 0, -1e-20})
	require.NoError(t, matrix.ProjectNonNegative(a))
	RequireAllClose(t, a, NewFilledDense(t, 2, 2, []float64{0, 2, 0, 0}), 0)

	ok, err := matrix.AllNonNegative(a)
	require.NoError(t, err)
	require.True(t, ok)

	// idempotent
	b := a.Clone().(*matrix.Dense)
	require.NoError(t, matrix.ProjectNonNegative(b))
	RequireAllClose(t, a, b, 0)
}

func TestClean(t *testing.T) {
	a := NewFilledDense(t, 1, 4, []float64{1e-9, -1e-9, 1e-7, -2}, matrix.WithZero(1e-8))
	require.NoError(t, matrix.Clean(a))
	RequireAllClose(t, a, NewFilledDense(t, 1, 4, []float64{0, 0, 1e-7, -2}), 0)

	require.ErrorIs(t, matrix.Clean(nil), matrix.ErrNilMatrix)
}

func TestFrobeniusNorm(t *testing.T) {
	a := NewFilledDense(t, 2, 2, []float64{1, 2, 2, 4})
	n, err := matrix.FrobeniusNorm(a)
	require.NoError(t, err)
	require.InDelta(t, 5.0, n, tolAbs)

	_, err = matrix.FrobeniusNorm(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestAllNonNegative_DetectsNegative(t *testing.T) {
	a := NewFilledDense(t, 2, 2, []float64{1, 2, 3, -0.5})
	ok, err := matrix.AllNonNegative(a)
	require.NoError(t, err)
	require.False(t, ok)
}
