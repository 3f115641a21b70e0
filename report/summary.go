// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

const opSummary = "report.Summary"

// Summary condenses a trace into a few numbers suitable for a log line.
type Summary struct {
	Iterations    int
	FirstResidual float64
	FinalResidual float64
	// Rate is the geometric per-iteration factor of the residual, exp(β) of a
	// least-squares fit log(residual) ≈ α + β·iteration over positive residuals.
	// NaN when fewer than two residuals are positive.
	Rate          float64
	MeanUInner    float64
	MeanVInnerMax float64
	Degenerate    int
}

// Summary computes the run summary.
//
// Errors:
//   - ErrNoObservations.
func (t *Trace) Summary() (Summary, error) {
	stats := t.Stats()
	if len(stats) == 0 {
		return Summary{}, fmt.Errorf("%s: %w", opSummary, ErrNoObservations)
	}

	uInner := make([]float64, len(stats))
	vInner := make([]float64, len(stats))
	xs := make([]float64, 0, len(stats))
	ys := make([]float64, 0, len(stats))
	s := Summary{
		Iterations:    len(stats),
		FirstResidual: stats[0].Residual,
		FinalResidual: stats[len(stats)-1].Residual,
		Rate:          math.NaN(),
	}
	for i, it := range stats {
		uInner[i] = float64(it.UInner)
		vInner[i] = float64(it.VInnerMax)
		s.Degenerate += it.Degenerate
		if it.Residual > 0 {
			xs = append(xs, float64(it.Iteration))
			ys = append(ys, math.Log(it.Residual))
		}
	}
	s.MeanUInner = stat.Mean(uInner, nil)
	s.MeanVInnerMax = stat.Mean(vInner, nil)
	if len(xs) >= 2 {
		_, beta := stat.LinearRegression(xs, ys, nil, false)
		s.Rate = math.Exp(beta)
	}

	return s, nil
}

// String renders s on one line.
func (s Summary) String() string {
	return fmt.Sprintf("%d iterations, residual %.6g -> %.6g, rate %.4g, mean inner U %.1f V %.1f, degenerate %d",
		s.Iterations, s.FirstResidual, s.FinalResidual, s.Rate, s.MeanUInner, s.MeanVInnerMax, s.Degenerate)
}
