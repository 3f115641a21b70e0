// SPDX-License-Identifier: MIT

// Package report records the progress of an NMF run and renders it.
//
// A Trace is plugged into nmf.WithOnOuterIteration and collects one
// nmf.IterationStats per outer iteration. The collected residuals can be
// rendered as a convergence chart with gonum/plot; the output format follows
// the file extension (.png, .svg, .pdf, .eps, .jpg, .tif).
//
//	tr := report.NewTrace()
//	e, _ := nmf.NewFromFile("data.txt", 10, nmf.WithOnOuterIteration(tr.Observe))
//	_ = e.Decompose()
//	_ = tr.SavePlot("residual.svg", 6*vg.Inch, 4*vg.Inch)
package report
