// SPDX-License-Identifier: MIT

package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const (
	opRenderHTML = "report.RenderHTML"
	opSaveHTML   = "report.SaveHTML"
)

// Chart builds an interactive echarts line chart of the residual per outer
// iteration, with zoom over the iteration axis.
//
// Errors:
//   - ErrNoObservations.
func (t *Trace) Chart() (*charts.Line, error) {
	xys := t.Residuals()
	if len(xys) == 0 {
		return nil, fmt.Errorf("%s: %w", opRenderHTML, ErrNoObservations)
	}

	t.mu.Lock()
	title := t.title
	t.mu.Unlock()

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:     types.ThemeWesteros,
			PageTitle: title,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "||D - UV||_F per outer iteration",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "iteration"}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  "residual",
			Scale: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
	)

	labels := make([]string, len(xys))
	items := make([]opts.LineData, len(xys))
	for i, xy := range xys {
		labels[i] = strconv.Itoa(int(xy.X))
		items[i] = opts.LineData{Value: xy.Y}
	}
	line.SetXAxis(labels).AddSeries("residual", items)

	return line, nil
}

// RenderHTML writes a self-contained HTML page holding Chart to w.
func (t *Trace) RenderHTML(w io.Writer) error {
	line, err := t.Chart()
	if err != nil {
		return err
	}
	if err = line.Render(w); err != nil {
		return fmt.Errorf("%s: %w", opRenderHTML, err)
	}

	return nil
}

// SaveHTML writes RenderHTML to path, truncating an existing file.
func (t *Trace) SaveHTML(path string) (err error) {
	if t.Len() == 0 {
		return fmt.Errorf("%s: %w", opSaveHTML, ErrNoObservations)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%s: %w", opSaveHTML, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("%s: close %s: %w", opSaveHTML, path, cerr))
		}
	}()

	return t.RenderHTML(f)
}
