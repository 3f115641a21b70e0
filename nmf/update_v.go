// SPDX-License-Identifier: MIT

package nmf

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvnmf/matrix"
	"gonum.org/v1/gonum/blas/blas64"
)

// UpdateV refines V by coordinate (Gauss–Seidel) descent while U is held fixed.
// Columns are independent subproblems solved concurrently on Workers goroutines.
//
// Returns:
//   - the largest per-column inner iteration count.
func (e *Engine) UpdateV() (int, error) {
	res, err := e.updateV()

	return res.maxIters, err
}

// updateV is UpdateV with the full per-call aggregate.
// Implementation:
//   - Stage 1: R = Uᵀ·D (k×n) and S = Uᵀ·U (k×k), shared read-only by all tasks.
//   - Stage 2: dispatch one task per column y to the worker pool.
//   - Stage 3: barrier; return the max inner count and the degenerate-step count.
//
// Complexity:
//   - Time O(m*k*(n+k) + n*inner*k²), Space O(k*(n+k)) plus per-column snapshots.
func (e *Engine) updateV() (columnResult, error) {
	policy := matrix.WithZero(e.cfg.Zero)
	r, err := matrix.NewDense(e.k, e.n, policy)
	if err != nil {
		return columnResult{}, fmt.Errorf("%s: %w", opUpdateV, err)
	}
	s, err := matrix.NewDense(e.k, e.k, policy)
	if err != nil {
		return columnResult{}, fmt.Errorf("%s: %w", opUpdateV, err)
	}
	if err = matrix.Gemm(true, false, 1, e.u, e.d, 0, r); err != nil {
		return columnResult{}, fmt.Errorf("%s: R: %w", opUpdateV, err)
	}
	if err = matrix.Gemm(true, false, 1, e.u, e.u, 0, s); err != nil {
		return columnResult{}, fmt.Errorf("%s: S: %w", opUpdateV, err)
	}

	rr, sr := r.RawMatrix(), s.RawMatrix()
	res := runColumns(e.cfg.Workers, e.n, func(y int) (int, int) {
		return e.solveColumn(y, rr, sr)
	})

	return res, nil
}

// solveColumn runs the inner loop of column y:
//
//	do { prev = V[:,y]; sweep x = 0..k-1; cur = V[:,y]; tt++ }
//	while tt <= InnerLoopMax && maxAbs(prev − cur) > VEps
//
// It writes only column y of V and reads only column y of V and R.
// Returns the number of sweeps and the number of degenerate coordinate steps.
func (e *Engine) solveColumn(y int, r, s blas64.General) (iters, degenerate int) {
	vr := e.v.RawMatrix()
	zero := e.cfg.Zero
	tt := 1
	for {
		prev, err := e.v.SparseColumn(y)
		if err != nil {
			return tt - 1, degenerate // unreachable for 0 <= y < n
		}
		for x := 0; x < e.k; x++ {
			val, err := coordinate(vr, r, s, x, y, zero)
			if err != nil {
				degenerate++
			}
			vr.Data[x*vr.Stride+y] = val
		}
		cur, err := e.v.SparseColumn(y)
		if err != nil {
			return tt, degenerate
		}
		tt++
		diff, err := prev.Sub(cur)
		if err != nil {
			return tt - 1, degenerate
		}
		if tt > e.cfg.InnerLoopMax || diff.MaxAbsNorm() <= e.cfg.VEps {
			break
		}
	}

	return tt - 1, degenerate
}

// coordinate computes the Gauss–Seidel update of V[x][y]:
//
//	value = (R[x][y] − Σ_{r≠x} S[x][r]·V[r][y]) / S[x][x]
//
// and returns it when it exceeds zero, 0 otherwise. A denominator whose
// magnitude is at or below zero yields (0, matrix.ErrDegenerateColumn).
//
// Complexity: O(k).
func coordinate(v, r, s blas64.General, x, y int, zero float64) (float64, error) {
	den := s.Data[x*s.Stride+x]
	if math.Abs(den) <= zero {
		return 0, fmt.Errorf("S[%d][%d]=%g: %w", x, x, den, matrix.ErrDegenerateColumn)
	}
	num := r.Data[x*r.Stride+y]
	row := s.Data[x*s.Stride : x*s.Stride+s.Cols]
	for j, sxj := range row {
		if j == x {
			continue
		}
		num -= sxj * v.Data[j*v.Stride+y]
	}
	val := num / den
	if val > zero {
		return val, nil
	}

	return 0, nil
}
