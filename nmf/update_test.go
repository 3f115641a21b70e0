// SPDX-License-Identifier: MIT
package nmf_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvnmf/matrix"
	"github.com/katalvlaran/lvnmf/nmf"
	"github.com/stretchr/testify/require"
)

func TestUpdateU_ZeroStepIsNoOp(t *testing.T) {
	e, err := nmf.NewFromMatrix(groundTruth(t), 2)
	require.NoError(t, err)
	require.NoError(t, e.RandomInitialize(e.U()))
	require.NoError(t, e.RandomInitialize(e.V()))
	before := e.U().String()

	iters, err := e.UpdateU()
	require.NoError(t, err)
	require.Equal(t, 1, iters)
	require.Equal(t, before, e.U().String())
}

func TestUpdateU_StaysNonNegative(t *testing.T) {
	// a large step overshoots into negative territory before projection
	e, err := nmf.NewFromMatrix(groundTruth(t), 2, nmf.WithStepCoefficient(0.5), nmf.WithInnerLoopMax(7))
	require.NoError(t, err)
	require.NoError(t, e.RandomInitialize(e.U()))
	require.NoError(t, e.RandomInitialize(e.V()))

	iters, err := e.UpdateU()
	require.NoError(t, err)
	require.LessOrEqual(t, iters, 6) // stops once t reaches InnerLoopMax
	requireNonNegative(t, e.U())
	e.U().Do(func(_, _ int, v float64) bool {
		require.False(t, math.IsNaN(v))

		return true
	})
}

func TestUpdateU_DescendsWithSmallStep(t *testing.T) {
	e, err := nmf.NewFromMatrix(groundTruth(t), 2, nmf.WithStepCoefficient(1e-4), nmf.WithSeed(5))
	require.NoError(t, err)
	require.NoError(t, e.RandomInitialize(e.U()))
	require.NoError(t, e.RandomInitialize(e.V()))

	before, err := e.Residual()
	require.NoError(t, err)
	_, err = e.UpdateU()
	require.NoError(t, err)
	after, err := e.Residual()
	require.NoError(t, err)
	require.Less(t, after, before)
}

// orthoEngine builds a 3×3 rank-2 problem whose U has orthonormal columns,
// so that the exact V is reached by a single coordinate sweep.
func orthoEngine(t *testing.T, opts ...nmf.Option) *nmf.Engine {
	t.Helper()
	e, err := nmf.NewFromMatrix(dense(t, 3, 3,
		1, 2, 3,
		4, 5, 6,
		0, 0, 0,
	), 2, opts...)
	require.NoError(t, err)
	require.NoError(t, e.U().CopyFrom(dense(t, 3, 2,
		1, 0,
		0, 1,
		0, 0,
	)))

	return e
}

func TestUpdateV_FixedPointIsIdempotent(t *testing.T) {
	e := orthoEngine(t)

	iters, err := e.UpdateV()
	require.NoError(t, err)
	require.Equal(t, 2, iters) // one sweep to reach V*, one to observe no change
	want := dense(t, 2, 3, 1, 2, 3, 4, 5, 6)
	require.Equal(t, want.String(), e.V().String())

	iters, err = e.UpdateV()
	require.NoError(t, err)
	require.Equal(t, 1, iters)
	require.Equal(t, want.String(), e.V().String())
}

func TestUpdateV_InnerCapBoundsSweeps(t *testing.T) {
	e := orthoEngine(t, nmf.WithInnerLoopMax(1))
	iters, err := e.UpdateV()
	require.NoError(t, err)
	require.Equal(t, 1, iters)
}

func TestUpdateV_ClampsNegativeSolutions(t *testing.T) {
	e := orthoEngine(t)
	require.NoError(t, e.SetData(dense(t, 3, 3,
		-1, 2, 3,
		4, -5, 6,
		0, 0, 0,
	)))
	_, err := e.UpdateV()
	require.NoError(t, err)
	require.Equal(t, dense(t, 2, 3, 0, 2, 3, 4, 0, 6).String(), e.V().String())
}

func TestUpdateV_DegenerateDenominatorYieldsZero(t *testing.T) {
	e, err := nmf.NewFromMatrix(dense(t, 3, 2,
		2, 4,
		2, 4,
		0, 0,
	), 2)
	require.NoError(t, err)
	// second column of U is all zero, so S[1][1] = 0
	require.NoError(t, e.U().CopyFrom(dense(t, 3, 2,
		1, 0,
		1, 0,
		0, 0,
	)))
	require.NoError(t, e.V().CopyFrom(dense(t, 2, 2, 7, 7, 7, 7)))

	_, err = e.UpdateV()
	require.NoError(t, err)
	require.Equal(t, dense(t, 2, 2, 2, 4, 0, 0).String(), e.V().String())
}

func TestUpdateV_WorkersMoreThanColumns(t *testing.T) {
	e := orthoEngine(t, nmf.WithWorkers(64))
	_, err := e.UpdateV()
	require.NoError(t, err)
	ok, err := matrix.AllNonNegative(e.V())
	require.NoError(t, err)
	require.True(t, ok)
}
