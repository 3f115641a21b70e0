// SPDX-License-Identifier: MIT

package report

import (
	"errors"
	"fmt"
	"sync"

	"github.com/katalvlaran/lvnmf/nmf"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoObservations is returned when a chart is requested before any
// iteration has been observed.
var ErrNoObservations = errors.New("report: no observations")

const (
	opSavePlot = "report.SavePlot"
	opPlot     = "report.Plot"
)

// Default chart size.
const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// Trace accumulates IterationStats. It is safe for concurrent use, so a
// caller may read a snapshot while Decompose is still running.
type Trace struct {
	mu    sync.Mutex
	title string
	stats []nmf.IterationStats
}

// NewTrace returns an empty Trace with the default chart title.
func NewTrace() *Trace {
	return &Trace{title: "NMF convergence"}
}

// SetTitle replaces the chart title.
func (t *Trace) SetTitle(title string) {
	t.mu.Lock()
	t.title = title
	t.mu.Unlock()
}

// Observe appends s. Its signature matches nmf.WithOnOuterIteration.
func (t *Trace) Observe(s nmf.IterationStats) {
	t.mu.Lock()
	t.stats = append(t.stats, s)
	t.mu.Unlock()
}

// Len returns the number of observed iterations.
func (t *Trace) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.stats)
}

// Stats returns a copy of the observations in arrival order.
func (t *Trace) Stats() []nmf.IterationStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]nmf.IterationStats, len(t.stats))
	copy(out, t.stats)

	return out
}

// Residuals returns (iteration, residual) points for plotting.
func (t *Trace) Residuals() plotter.XYs {
	t.mu.Lock()
	defer t.mu.Unlock()

	xys := make(plotter.XYs, len(t.stats))
	for i, s := range t.stats {
		xys[i].X = float64(s.Iteration)
		xys[i].Y = s.Residual
	}

	return xys
}

// Plot builds a line-and-points chart of the residual per outer iteration.
// The Y axis switches to a log scale when every residual is strictly positive.
//
// Errors:
//   - ErrNoObservations, plotter construction errors.
func (t *Trace) Plot() (*plot.Plot, error) {
	xys := t.Residuals()
	if len(xys) == 0 {
		return nil, fmt.Errorf("%s: %w", opPlot, ErrNoObservations)
	}

	t.mu.Lock()
	title := t.title
	t.mu.Unlock()

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "outer iteration"
	p.Y.Label.Text = "||D - UV||_F"
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opPlot, err)
	}
	p.Add(line, points)

	if allPositive(xys) {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	return p, nil
}

// SavePlot renders Plot to path; the extension selects the format.
// A zero width or height falls back to the defaults.
func (t *Trace) SavePlot(path string, w, h vg.Length) error {
	p, err := t.Plot()
	if err != nil {
		return fmt.Errorf("%s: %w", opSavePlot, err)
	}
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	if err = p.Save(w, h, path); err != nil {
		return fmt.Errorf("%s: %s: %w", opSavePlot, path, err)
	}

	return nil
}

func allPositive(xys plotter.XYs) bool {
	for _, xy := range xys {
		if xy.Y <= 0 {
			return false
		}
	}

	return true
}
