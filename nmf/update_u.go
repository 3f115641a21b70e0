// SPDX-License-Identifier: MIT

package nmf

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvnmf/matrix"
)

// UpdateU refines U by projected gradient descent while V is held fixed.
// MAIN DESCRIPTION:
//   - Precomputes G = V·Vᵀ (k×k) and H = D·Vᵀ (m×k) once per call.
//   - Each inner iteration t = 1, 2, ... takes a diminishing step c/sqrt(t)
//     against the gradient of ||D − U·V||²_F, i.e. 2·(U·G − H), and projects
//     the candidate onto U >= 0.
//
// Implementation:
//   - Stage 1: G, H via Gemm.
//   - Stage 2: grad = 2·U·G − 2·H (one Gemm with beta = −2 over a copy of H).
//   - Stage 3: S = U − step·grad; Δ = S − U; U := max(S, 0); t++.
//   - Stage 4: stop when t >= InnerLoopMax or ||Δ||_F <= UEps.
//
// Behavior highlights:
//   - Δ is measured before projection.
//   - With StepCoefficient 0 the candidate equals U, so U is unchanged and
//     the loop stops after one iteration.
//   - Every arithmetic result is cleaned against the engine's zero threshold.
//
// Returns:
//   - the number of inner iterations performed.
//
// Complexity:
//   - Time O(n*k*(m+k) + inner*m*k²), Space O(m*k + k²).
func (e *Engine) UpdateU() (int, error) {
	policy := matrix.WithZero(e.cfg.Zero)
	g, err := matrix.NewDense(e.k, e.k, policy)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opUpdateU, err)
	}
	h, err := matrix.NewDense(e.m, e.k, policy)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opUpdateU, err)
	}
	grad, err := matrix.NewDense(e.m, e.k, policy)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opUpdateU, err)
	}
	if err = matrix.Gemm(false, true, 1, e.v, e.v, 0, g); err != nil {
		return 0, fmt.Errorf("%s: G: %w", opUpdateU, err)
	}
	if err = matrix.Gemm(false, true, 1, e.d, e.v, 0, h); err != nil {
		return 0, fmt.Errorf("%s: H: %w", opUpdateU, err)
	}

	t := 1
	for {
		delta, err := e.gradientStep(g, h, grad, t)
		if err != nil {
			return t - 1, fmt.Errorf("%s: t=%d: %w", opUpdateU, t, err)
		}
		t++
		if t >= e.cfg.InnerLoopMax || delta <= e.cfg.UEps {
			break
		}
	}

	return t - 1, nil
}

// gradientStep performs one projected step at iteration t and returns ||Δ||_F.
// grad is scratch space of U's shape.
func (e *Engine) gradientStep(g, h, grad *matrix.Dense, t int) (float64, error) {
	if err := grad.CopyFrom(h); err != nil {
		return 0, err
	}
	if err := matrix.Gemm(false, false, 2, e.u, g, -2, grad); err != nil {
		return 0, err
	}
	if err := matrix.Clean(grad); err != nil {
		return 0, err
	}
	step := e.cfg.StepCoefficient / math.Sqrt(float64(t))
	move, err := matrix.Scale(grad, step)
	if err != nil {
		return 0, err
	}
	cand, err := matrix.Sub(e.u, move)
	if err != nil {
		return 0, err
	}
	delta, err := matrix.Sub(cand, e.u)
	if err != nil {
		return 0, err
	}
	if err = matrix.ProjectNonNegative(cand); err != nil {
		return 0, err
	}
	if err = e.u.CopyFrom(cand); err != nil {
		return 0, err
	}

	return matrix.FrobeniusNorm(delta)
}
