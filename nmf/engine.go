// SPDX-License-Identifier: MIT

package nmf

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvnmf/matrix"
	"github.com/katalvlaran/lvnmf/matrixio"
)

// Operation tags for error wrapping.
const (
	opNew           = "nmf.New"
	opNewFromMatrix = "nmf.NewFromMatrix"
	opNewFromFile   = "nmf.NewFromFile"
	opSetData       = "nmf.SetData"
	opRandomInit    = "nmf.RandomInitialize"
	opDecompose     = "nmf.Decompose"
	opUpdateU       = "nmf.UpdateU"
	opUpdateV       = "nmf.UpdateV"
	opReconstruct   = "nmf.Reconstruct"
	opResidual      = "nmf.Residual"
	opPersist       = "nmf.Persist"
)

// Engine owns the data matrix D (m×n) and the factors U (m×k) and V (k×n),
// plus the immutable run configuration.
//
// An Engine is not safe for concurrent use; UpdateV parallelizes internally.
type Engine struct {
	m, n, k int
	d, u, v *matrix.Dense
	cfg     Config
	rng     *rand.Rand
}

// New creates an engine for an m×n data matrix and rank k. D is zero-filled
// and is expected to be populated with SetData; U and V are zero-filled until
// Decompose (or RandomInitialize) runs.
//
// Errors:
//   - matrix.ErrInvalidDimensions (m or n < 1), ErrRankInvalid (k < 1),
//     ErrOptionViolation.
//
// Complexity:
//   - Time O(m*n + (m+n)*k), Space O(m*n + (m+n)*k).
func New(m, n, k int, opts ...Option) (*Engine, error) {
	if m < 1 || n < 1 {
		return nil, fmt.Errorf("%s: %dx%d: %w", opNew, m, n, matrix.ErrInvalidDimensions)
	}
	if k < 1 {
		return nil, fmt.Errorf("%s: k=%d: %w", opNew, k, ErrRankInvalid)
	}
	cfg, err := gatherConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}

	return newEngine(m, n, k, cfg)
}

// newEngine allocates D, U and V under a resolved configuration.
func newEngine(m, n, k int, cfg Config) (*Engine, error) {
	cfg.finalize(m, n)
	policy := matrix.WithZero(cfg.Zero)

	e := &Engine{m: m, n: n, k: k, cfg: cfg, rng: rngFromSeed(cfg.Seed)}
	var err error
	if e.d, err = matrix.NewDense(m, n, policy); err != nil {
		return nil, fmt.Errorf("%s: D: %w", opNew, err)
	}
	if e.u, err = matrix.NewDense(m, k, policy); err != nil {
		return nil, fmt.Errorf("%s: U: %w", opNew, err)
	}
	if e.v, err = matrix.NewDense(k, n, policy); err != nil {
		return nil, fmt.Errorf("%s: V: %w", opNew, err)
	}

	return e, nil
}

// NewFromMatrix creates an engine whose D is a copy of data; m and n are
// taken from data's shape.
//
// Errors:
//   - ErrNilData, ErrRankInvalid, ErrOptionViolation.
func NewFromMatrix(data *matrix.Dense, k int, opts ...Option) (*Engine, error) {
	if data == nil {
		return nil, fmt.Errorf("%s: %w", opNewFromMatrix, ErrNilData)
	}
	e, err := New(data.Rows(), data.Cols(), k, opts...)
	if err != nil {
		return nil, err
	}
	if err = e.SetData(data); err != nil {
		return nil, err
	}

	return e, nil
}

// NewFromFile parses a two-space delimited matrix file (see package matrixio)
// and creates an engine of rank k over it. Values at or below the configured
// near-zero threshold are read as 0.
//
// Errors:
//   - ErrRankInvalid, ErrOptionViolation, any matrixio parse or I/O error.
func NewFromFile(path string, k int, opts ...Option) (*Engine, error) {
	if k < 1 {
		return nil, fmt.Errorf("%s: k=%d: %w", opNewFromFile, k, ErrRankInvalid)
	}
	cfg, err := gatherConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNewFromFile, err)
	}
	data, err := matrixio.ReadFile(path, matrixio.WithZero(cfg.Zero))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNewFromFile, err)
	}
	e, err := newEngine(data.Rows(), data.Cols(), k, cfg)
	if err != nil {
		return nil, err
	}
	if err = e.SetData(data); err != nil {
		return nil, err
	}

	return e, nil
}

// SetData copies data into D.
//
// Errors:
//   - ErrNilData, ErrShapeMismatch (data is not m×n).
func (e *Engine) SetData(data *matrix.Dense) error {
	if data == nil {
		return fmt.Errorf("%s: %w", opSetData, ErrNilData)
	}
	if data.Rows() != e.m || data.Cols() != e.n {
		return fmt.Errorf("%s: got %dx%d, want %dx%d: %w", opSetData, data.Rows(), data.Cols(), e.m, e.n, ErrShapeMismatch)
	}
	if err := e.d.CopyFrom(data); err != nil {
		return fmt.Errorf("%s: %w", opSetData, err)
	}

	return nil
}

// D returns the data matrix. The engine keeps ownership; callers must not
// mutate it while Decompose runs.
func (e *Engine) D() *matrix.Dense { return e.d }

// U returns the left factor (m×k).
func (e *Engine) U() *matrix.Dense { return e.u }

// V returns the right factor (k×n).
func (e *Engine) V() *matrix.Dense { return e.v }

// Dims returns (m, n, k).
func (e *Engine) Dims() (m, n, k int) { return e.m, e.n, e.k }

// Config returns a copy of the resolved configuration.
func (e *Engine) Config() Config { return e.cfg }

// RandomInitialize fills a with integer levels 0..9 drawn from the engine's
// RNG and normalizes its columns to unit L2 norm. All-zero columns stay zero.
//
// Errors:
//   - matrix.ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func (e *Engine) RandomInitialize(a *matrix.Dense) error {
	if err := matrix.ValidateNotNil(a); err != nil {
		return fmt.Errorf("%s: %w", opRandomInit, err)
	}
	fillLevels(e.rng, a)
	if err := matrix.NormalizeColumns(a); err != nil {
		return fmt.Errorf("%s: %w", opRandomInit, err)
	}

	return nil
}

// Decompose runs the alternating factorization.
// MAIN DESCRIPTION:
//   - Re-seeds the RNG, randomly initializes U and V, then runs exactly
//     OuterLoopMax iterations of {UpdateU; UpdateV}. There is no early exit
//     on convergence.
//
// Behavior highlights:
//   - The context is checked before every outer iteration; on cancellation
//     U and V hold the factors of the last completed iteration.
//   - OnOuterIteration (if set) receives IterationStats after each iteration.
//   - Persister (if set) receives (D, U, V) after the loop.
//
// Errors:
//   - ctx.Err() wrapped with the iteration number, persister errors,
//     and (never for well-formed engines) matrix kernel errors.
//
// Complexity:
//   - Time O(outer * (inner*(m*k² + k²*n) + m*n*k)), Space O(m*n + (m+n)*k).
func (e *Engine) Decompose() error {
	ctx := e.cfg.Ctx
	e.rng = rngFromSeed(e.cfg.Seed)
	if err := e.RandomInitialize(e.u); err != nil {
		return fmt.Errorf("%s: %w", opDecompose, err)
	}
	if err := e.RandomInitialize(e.v); err != nil {
		return fmt.Errorf("%s: %w", opDecompose, err)
	}

	for it := 1; it <= e.cfg.OuterLoopMax; it++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: before iteration %d: %w", opDecompose, it, err)
		}
		uIters, err := e.UpdateU()
		if err != nil {
			return fmt.Errorf("%s: iteration %d: %w", opDecompose, it, err)
		}
		vRes, err := e.updateV()
		if err != nil {
			return fmt.Errorf("%s: iteration %d: %w", opDecompose, it, err)
		}
		if e.cfg.OnOuterIteration != nil {
			res, err := e.Residual()
			if err != nil {
				return fmt.Errorf("%s: iteration %d: %w", opDecompose, it, err)
			}
			e.cfg.OnOuterIteration(IterationStats{
				Iteration:  it,
				UInner:     uIters,
				VInnerMax:  vRes.maxIters,
				Degenerate: vRes.degenerate,
				Residual:   res,
			})
		}
	}

	if e.cfg.Persister != nil {
		if err := e.cfg.Persister.Persist(e.d, e.u, e.v); err != nil {
			return fmt.Errorf("%s: %w", opPersist, err)
		}
	}

	return nil
}

// Reconstruct returns the fresh product U·V (m×n).
func (e *Engine) Reconstruct() (*matrix.Dense, error) {
	uv, err := matrix.Mul(e.u, e.v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opReconstruct, err)
	}

	return uv, nil
}

// Residual returns the reconstruction error ||D − U·V||_F.
//
// Complexity:
//   - Time O(m*n*k), Space O(m*n).
func (e *Engine) Residual() (float64, error) {
	uv, err := e.Reconstruct()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opResidual, err)
	}
	diff, err := matrix.Sub(e.d, uv)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opResidual, err)
	}
	norm, err := matrix.FrobeniusNorm(diff)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opResidual, err)
	}

	return norm, nil
}
