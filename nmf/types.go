// SPDX-License-Identifier: MIT

// Package nmf provides tunable options, error definitions and the
// progress/persistence contracts of the factorization engine.
package nmf

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvnmf/matrix"
)

// Sentinel errors for engine construction and execution.
var (
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("nmf: invalid option supplied")

	// ErrRankInvalid is returned when the factorization rank k is < 1.
	ErrRankInvalid = errors.New("nmf: rank must be >= 1")

	// ErrShapeMismatch is returned when a data matrix does not match the engine's m×n.
	ErrShapeMismatch = errors.New("nmf: data shape mismatch")

	// ErrNilData is returned when a nil data matrix is supplied.
	ErrNilData = errors.New("nmf: data matrix is nil")
)

// Defaults of the run configuration.
const (
	DefaultVEps            = 1e-6
	DefaultUEps            = DefaultVEps
	DefaultZero            = matrix.DefaultZero
	DefaultInnerLoopMax    = 100
	DefaultOuterLoopMax    = 100
	DefaultStepCoefficient = 0.0
	DefaultWorkers         = 4
	DefaultSeed      int64 = 1
)

// IterationStats describes one completed outer iteration.
type IterationStats struct {
	// Iteration is the 1-based outer iteration number.
	Iteration int

	// UInner is the number of inner iterations UpdateU performed.
	UInner int

	// VInnerMax is the largest per-column inner iteration count of UpdateV.
	VInnerMax int

	// Degenerate counts coordinate steps whose denominator was at or below
	// the near-zero threshold and were therefore set to 0.
	Degenerate int

	// Residual is ||D − U·V||_F after the iteration.
	Residual float64
}

// Persister receives the final D, U and V once Decompose has completed.
// Implementations must not retain the matrices beyond the call.
type Persister interface {
	Persist(d, u, v *matrix.Dense) error
}

// PersisterFunc adapts a plain function to the Persister interface.
type PersisterFunc func(d, u, v *matrix.Dense) error

// Persist calls f(d, u, v).
func (f PersisterFunc) Persist(d, u, v *matrix.Dense) error { return f(d, u, v) }

// Option configures the engine via functional arguments.
// If an Option is invalid (e.g. negative tolerance), it will be recorded
// internally and surfaced as ErrOptionViolation by the constructor.
type Option func(*Config)

// Config holds the run parameters of an Engine. It is resolved once at
// construction and is read-only for the engine's lifetime.
type Config struct {
	// Ctx allows cancellation between outer iterations.
	Ctx context.Context

	// VEps is the per-column UpdateV tolerance on maxAbs(prev − cur).
	VEps float64

	// UEps is the UpdateU tolerance on ||Δ||_F.
	UEps float64

	// Zero is the near-zero threshold of D, U and V.
	Zero float64

	// InnerLoopMax and OuterLoopMax cap the inner and outer iterations.
	InnerLoopMax int
	OuterLoopMax int

	// StepCoefficient is the numerator of the UpdateU step c/sqrt(t).
	// The default 0 turns UpdateU into a no-op.
	StepCoefficient float64

	// Workers is the size of the UpdateV column pool.
	Workers int

	// Seed drives RandomInitialize. Zero selects DefaultSeed.
	Seed int64

	// OnOuterIteration is called after every outer iteration.
	OnOuterIteration func(IterationStats)

	// Persister, if set, receives (D, U, V) after the outer loop.
	Persister Persister

	uEpsSet    bool  // UEps given explicitly
	scaledUEps bool  // derive UEps as VEps·sqrt(m+n)
	err        error // first violation recorded during option parsing
}

// DefaultConfig returns a Config with sane defaults:
//   - context.Background()
//   - vEps = uEps = 1e-6, zero = 1e-8
//   - 100 inner and 100 outer iterations
//   - step coefficient 0, 4 workers, seed 1
//   - no hook, no persister.
func DefaultConfig() Config {
	return Config{
		Ctx:             context.Background(),
		VEps:            DefaultVEps,
		UEps:            DefaultUEps,
		Zero:            DefaultZero,
		InnerLoopMax:    DefaultInnerLoopMax,
		OuterLoopMax:    DefaultOuterLoopMax,
		StepCoefficient: DefaultStepCoefficient,
		Workers:         DefaultWorkers,
		Seed:            DefaultSeed,
	}
}

// violate records the first option violation.
func (c *Config) violate(format string, args ...any) {
	if c.err == nil {
		c.err = fmt.Errorf("%w: "+format, append([]any{ErrOptionViolation}, args...)...)
	}
}

// badTolerance reports whether x is unusable as a tolerance or threshold.
func badTolerance(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0) || x < 0
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(c *Config) {
		if ctx != nil {
			c.Ctx = ctx
		}
	}
}

// WithVEps sets the UpdateV convergence tolerance (>= 0).
// Unless WithUEps is also given, uEps follows vEps.
func WithVEps(eps float64) Option {
	return func(c *Config) {
		if badTolerance(eps) {
			c.violate("vEps must be finite and >= 0 (%v)", eps)
			return
		}
		c.VEps = eps
	}
}

// WithUEps sets the UpdateU convergence tolerance (>= 0) explicitly.
// It takes precedence over WithScaledUEps.
func WithUEps(eps float64) Option {
	return func(c *Config) {
		if badTolerance(eps) {
			c.violate("uEps must be finite and >= 0 (%v)", eps)
			return
		}
		c.UEps = eps
		c.uEpsSet = true
	}
}

// WithScaledUEps derives uEps as vEps·sqrt(m+n) once the data shape is known.
func WithScaledUEps() Option {
	return func(c *Config) { c.scaledUEps = true }
}

// WithZero sets the near-zero threshold (>= 0) used for D, U and V.
func WithZero(z float64) Option {
	return func(c *Config) {
		if badTolerance(z) {
			c.violate("zero must be finite and >= 0 (%v)", z)
			return
		}
		c.Zero = z
	}
}

// WithInnerLoopMax caps the inner iterations of UpdateU and UpdateV.
//
//	n >= 1: cap
//	n < 1: invalid option → ErrOptionViolation
func WithInnerLoopMax(n int) Option {
	return func(c *Config) {
		if n < 1 {
			c.violate("innerLoopMax must be >= 1 (%d)", n)
			return
		}
		c.InnerLoopMax = n
	}
}

// WithOuterLoopMax sets the number of outer iterations (0 runs only the initialization).
func WithOuterLoopMax(n int) Option {
	return func(c *Config) {
		if n < 0 {
			c.violate("outerLoopMax cannot be negative (%d)", n)
			return
		}
		c.OuterLoopMax = n
	}
}

// WithStepCoefficient sets the UpdateU step numerator (finite, >= 0).
func WithStepCoefficient(s float64) Option {
	return func(c *Config) {
		if badTolerance(s) {
			c.violate("stepCoefficient must be finite and >= 0 (%v)", s)
			return
		}
		c.StepCoefficient = s
	}
}

// WithWorkers sets the size of the UpdateV worker pool (>= 1).
func WithWorkers(n int) Option {
	return func(c *Config) {
		if n < 1 {
			c.violate("workers must be >= 1 (%d)", n)
			return
		}
		c.Workers = n
	}
}

// WithSeed sets the initialization seed; 0 selects DefaultSeed.
func WithSeed(seed int64) Option {
	return func(c *Config) { c.Seed = seed }
}

// WithOnOuterIteration registers a callback run after every outer iteration.
func WithOnOuterIteration(fn func(IterationStats)) Option {
	return func(c *Config) {
		if fn != nil {
			c.OnOuterIteration = fn
		}
	}
}

// WithPersister registers the collaborator that receives the final factors.
func WithPersister(p Persister) Option {
	return func(c *Config) {
		if p != nil {
			c.Persister = p
		}
	}
}

// gatherConfig applies opts on top of DefaultConfig and reports the first violation.
func gatherConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.err != nil {
		return Config{}, cfg.err
	}

	return cfg, nil
}

// finalize resolves the shape-dependent uEps default.
func (c *Config) finalize(m, n int) {
	switch {
	case c.uEpsSet:
	case c.scaledUEps:
		c.UEps = c.VEps * math.Sqrt(float64(m+n))
	default:
		c.UEps = c.VEps
	}
}
