// SPDX-License-Identifier: MIT

// Command nmf factorizes a non-negative data matrix D (m×n) into U (m×k)
// and V (k×n) and writes the three matrices next to each other.
//
// Usage:
//
//	nmf -in data.txt -k 10 [-out result] [-outer 100] [-inner 100]
//	    [-veps 1e-6] [-ueps 0] [-scaled-ueps] [-zero 1e-8] [-step 0]
//	    [-workers 4] [-seed 1] [-timeout 0] [-plot residual.png]
//	    [-html residual.html]
//
// Input lines are "label  v1  v2 ..." with two-space separators. Output files
// are <out>D, <out>U and <out>V, tab-separated.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/katalvlaran/lvnmf/matrixio"
	"github.com/katalvlaran/lvnmf/nmf"
	"github.com/katalvlaran/lvnmf/report"
)

// errUsage marks invalid command-line input.
var errUsage = errors.New("nmf: usage")

type cliConfig struct {
	in, out, plot string
	html          string
	k             int
	outer, inner  int
	vEps, uEps    float64
	uEpsSet       bool
	scaledUEps    bool
	zero, step    float64
	workers       int
	seed          int64
	timeout       time.Duration
}

func parseFlags(args []string, stderr io.Writer) (cliConfig, error) {
	var c cliConfig
	fs := flag.NewFlagSet("nmf", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&c.in, "in", "", "input matrix file (required)")
	fs.IntVar(&c.k, "k", 0, "factorization rank (required)")
	fs.StringVar(&c.out, "out", "result", "output base name; D, U and V are appended")
	fs.IntVar(&c.outer, "outer", nmf.DefaultOuterLoopMax, "outer iterations")
	fs.IntVar(&c.inner, "inner", nmf.DefaultInnerLoopMax, "inner iteration cap for U and V updates")
	fs.Float64Var(&c.vEps, "veps", nmf.DefaultVEps, "V convergence tolerance (max-abs column change)")
	fs.Float64Var(&c.uEps, "ueps", 0, "U convergence tolerance (Frobenius); unset follows -veps")
	fs.BoolVar(&c.scaledUEps, "scaled-ueps", false, "use veps*sqrt(m+n) as the U tolerance")
	fs.Float64Var(&c.zero, "zero", nmf.DefaultZero, "near-zero threshold")
	fs.Float64Var(&c.step, "step", nmf.DefaultStepCoefficient, "U step coefficient c (step = c/sqrt(t))")
	fs.IntVar(&c.workers, "workers", nmf.DefaultWorkers, "concurrent V column workers")
	fs.Int64Var(&c.seed, "seed", nmf.DefaultSeed, "random initialization seed")
	fs.DurationVar(&c.timeout, "timeout", 0, "abort after this long (0 = no limit)")
	fs.StringVar(&c.plot, "plot", "", "write a residual chart (.png, .svg, .pdf)")
	fs.StringVar(&c.html, "html", "", "write an interactive residual chart as an HTML page")

	if err := fs.Parse(args); err != nil {
		return c, fmt.Errorf("%w: %w", errUsage, err)
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "ueps" {
			c.uEpsSet = true
		}
	})
	if c.in == "" {
		return c, fmt.Errorf("%w: -in is required", errUsage)
	}
	if c.k < 1 {
		return c, fmt.Errorf("%w: -k must be >= 1", errUsage)
	}
	if fs.NArg() > 0 {
		return c, fmt.Errorf("%w: unexpected arguments %q", errUsage, fs.Args())
	}

	return c, nil
}

// options maps the flags onto engine options.
func (c cliConfig) options(ctx context.Context, hook func(nmf.IterationStats)) []nmf.Option {
	opts := []nmf.Option{
		nmf.WithContext(ctx),
		nmf.WithOuterLoopMax(c.outer),
		nmf.WithInnerLoopMax(c.inner),
		nmf.WithVEps(c.vEps),
		nmf.WithZero(c.zero),
		nmf.WithStepCoefficient(c.step),
		nmf.WithWorkers(c.workers),
		nmf.WithSeed(c.seed),
		nmf.WithOnOuterIteration(hook),
		nmf.WithPersister(matrixio.FilePersister{Base: c.out}),
	}
	if c.scaledUEps {
		opts = append(opts, nmf.WithScaledUEps())
	}
	if c.uEpsSet {
		opts = append(opts, nmf.WithUEps(c.uEps))
	}

	return opts
}

func run(args []string, stderr io.Writer) error {
	c, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	logger := log.New(stderr, "nmf: ", log.LstdFlags)

	ctx := context.Background()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	trace := report.NewTrace()
	trace.SetTitle(fmt.Sprintf("%s (k=%d)", c.in, c.k))
	hook := func(s nmf.IterationStats) {
		trace.Observe(s)
		logger.Printf("iteration %d: residual=%.6g uInner=%d vInnerMax=%d degenerate=%d",
			s.Iteration, s.Residual, s.UInner, s.VInnerMax, s.Degenerate)
	}

	e, err := nmf.NewFromFile(c.in, c.k, c.options(ctx, hook)...)
	if err != nil {
		return err
	}
	m, n, k := e.Dims()
	cfg := e.Config()
	logger.Printf("D is %dx%d, rank %d, vEps=%g uEps=%g workers=%d", m, n, k, cfg.VEps, cfg.UEps, cfg.Workers)

	start := time.Now()
	if err = e.Decompose(); err != nil {
		return err
	}
	logger.Printf("done in %s; wrote %s{%s,%s,%s}", time.Since(start).Round(time.Millisecond),
		c.out, matrixio.SuffixD, matrixio.SuffixU, matrixio.SuffixV)

	if trace.Len() == 0 {
		return nil
	}
	if sum, serr := trace.Summary(); serr == nil {
		logger.Printf("summary: %s", sum)
	}
	if c.plot != "" {
		if err = trace.SavePlot(c.plot, report.DefaultWidth, report.DefaultHeight); err != nil {
			return err
		}
		logger.Printf("chart written to %s", c.plot)
	}
	if c.html != "" {
		if err = trace.SaveHTML(c.html); err != nil {
			return err
		}
		logger.Printf("HTML chart written to %s", c.html)
	}

	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Printf("%v", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
