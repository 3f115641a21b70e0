// SPDX-License-Identifier: MIT
package report_test

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvnmf/nmf"
	"github.com/katalvlaran/lvnmf/report"
)

// RenderSuite exercises the HTML chart and the run summary on a trace whose
// residual halves every iteration.
type RenderSuite struct {
	suite.Suite
	trace *report.Trace
}

func (s *RenderSuite) SetupTest() {
	s.trace = report.NewTrace()
	s.trace.SetTitle("halving")
	for i := 1; i <= 8; i++ {
		s.trace.Observe(nmf.IterationStats{
			Iteration:  i,
			UInner:     2 * i,
			VInnerMax:  3,
			Degenerate: i % 2,
			Residual:   64 / math.Pow(2, float64(i)),
		})
	}
}

// TestSummaryRate recovers the halving factor from the log-linear fit.
func (s *RenderSuite) TestSummaryRate() {
	sum, err := s.trace.Summary()
	require.NoError(s.T(), err)
	require.Equal(s.T(), 8, sum.Iterations)
	require.Equal(s.T(), 32.0, sum.FirstResidual)
	require.Equal(s.T(), 0.25, sum.FinalResidual)
	require.InDelta(s.T(), 0.5, sum.Rate, 1e-12)
	require.InDelta(s.T(), 9.0, sum.MeanUInner, 1e-12)
	require.InDelta(s.T(), 3.0, sum.MeanVInnerMax, 1e-12)
	require.Equal(s.T(), 4, sum.Degenerate)
	require.Contains(s.T(), sum.String(), "8 iterations")
}

// TestSummaryZeroResiduals leaves Rate undefined when nothing can be fitted.
func (s *RenderSuite) TestSummaryZeroResiduals() {
	tr := report.NewTrace()
	tr.Observe(nmf.IterationStats{Iteration: 1, Residual: 3})
	tr.Observe(nmf.IterationStats{Iteration: 2})
	sum, err := tr.Summary()
	require.NoError(s.T(), err)
	require.True(s.T(), math.IsNaN(sum.Rate))

	_, err = report.NewTrace().Summary()
	require.ErrorIs(s.T(), err, report.ErrNoObservations)
}

// TestRenderHTML checks the page carries the title and one point per iteration.
func (s *RenderSuite) TestRenderHTML() {
	line, err := s.trace.Chart()
	require.NoError(s.T(), err)
	require.Len(s.T(), line.MultiSeries, 1)
	require.Len(s.T(), line.MultiSeries[0].Data, 8)

	var buf bytes.Buffer
	require.NoError(s.T(), s.trace.RenderHTML(&buf))
	page := buf.String()
	require.True(s.T(), strings.Contains(page, "<html"), "not an HTML page")
	require.Contains(s.T(), page, "halving")
}

// TestSaveHTML writes the page to disk and truncates on a second call.
func (s *RenderSuite) TestSaveHTML() {
	path := filepath.Join(s.T().TempDir(), "trace.html")
	require.NoError(s.T(), s.trace.SaveHTML(path))
	require.NoError(s.T(), s.trace.SaveHTML(path))
	raw, err := os.ReadFile(path)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, strings.Count(string(raw), "<html"))

	require.ErrorIs(s.T(), report.NewTrace().SaveHTML(path), report.ErrNoObservations)
	require.ErrorIs(s.T(), report.NewTrace().RenderHTML(&bytes.Buffer{}), report.ErrNoObservations)
	require.Error(s.T(), s.trace.SaveHTML(filepath.Join(s.T().TempDir(), "no", "dir", "x.html")))
}

// Entry point for running the suite.
func TestRenderSuite(t *testing.T) {
	suite.Run(t, new(RenderSuite))
}
