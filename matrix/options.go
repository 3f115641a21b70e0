// SPDX-License-Identifier: MIT

// Package matrix: functional configuration of the numeric policy carried by
// Dense and SparseVector instances. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that resolves defaults in one place.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - The near-zero threshold ("zero") is the single knob behind the clean-up
//     step applied after Add/Sub/Scale/Hadamard and normalization: any result
//     whose magnitude is <= zero is stored as exactly 0.
//   - Dense and SparseVector have different historical defaults for zero;
//     gatherOptions takes the base default explicitly so each constructor keeps its own.
//   - The policy is per instance and is inherited by results (first operand wins).
package matrix

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultZero is the near-zero threshold of Dense matrices.
	// Values with |v| <= DefaultZero are snapped to 0 by cleaning kernels.
	DefaultZero = 1e-8

	// DefaultSparseZero is the near-zero threshold of standalone SparseVectors.
	// Arithmetic results with |v| <= DefaultSparseZero are not stored.
	DefaultSparseZero = 1e-14

	// DefaultValidateNaNInf toggles strict finite-value validation on Set/Apply.
	DefaultValidateNaNInf = true
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicZeroInvalid = "matrix: WithZero: zero must be finite, non-negative"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported to prevent external mutation; public entry points
// accept `...Option` and resolve them via gatherOptions.
type Options struct {
	zero           float64 // >= 0; DefaultZero or DefaultSparseZero
	validateNaNInf bool    // DefaultValidateNaNInf
}

// Zero reports the resolved near-zero threshold.
// Complexity: O(1).
func (o Options) Zero() float64 { return o.zero }

// ValidateNaNInf reports whether finite-only validation is enabled.
// Complexity: O(1).
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// ---------- Constructors (WithX) ----------

// WithZero sets the near-zero threshold used by cleaning kernels.
// Implementation:
//   - Stage 1: validate z is finite and ≥ 0.
//   - Stage 2: return a setter that writes z into Options.
//
// Behavior highlights:
//   - Strict validation in constructor; panics on nonsensical values.
//   - z == 0 disables snapping except for exact zeros.
//
// Inputs:
//   - z: non-negative finite threshold.
//
// Returns:
//   - Option: functional setter.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// AI-Hints:
//   - Keep z several orders of magnitude below the convergence tolerances,
//     otherwise iterative updates stall on snapped values.
func WithZero(z float64) Option {
	if isNonFinite(z) || z < 0 {
		panic(panicZeroInvalid)
	}

	return func(o *Options) { o.zero = z }
}

// WithValidateNaNInf enables strict finite-value validation (default).
// Complexity: O(1).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables NaN/Inf validation (use with care).
// Notes:
//   - This flag propagates only on creation; existing matrices are unaffected.
//
// Complexity: O(1).
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// --------------------------- Option Resolution ---------------------------

// NewMatrixOptions resolves option setters against the Dense defaults.
// Implementation:
//   - Stage 1: start from DefaultZero / DefaultValidateNaNInf.
//   - Stage 2: apply opts in order; last-writer-wins semantics.
//
// Returns:
//   - Options: effective configuration.
//
// Complexity:
//   - Time O(k), Space O(1) for k=len(opts).
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(DefaultZero, opts...)
}

// gatherOptions applies user-provided Option setters on top of defaults.
// baseZero selects the family default (DefaultZero for Dense, DefaultSparseZero
// for SparseVector) so that defaults never diverge from the documented constants.
//
// Complexity:
//   - Time O(k), Space O(1) for k=len(user).
func gatherOptions(baseZero float64, user ...Option) Options {
	o := Options{
		zero:           baseZero,
		validateNaNInf: DefaultValidateNaNInf,
	}
	for _, set := range user {
		if set != nil {
			set(&o) // apply in order; last-writer-wins semantics
		}
	}

	return o
}

// nearZero reports whether |v| <= zero, i.e. v fails the "non-zero" validity test.
// Complexity: O(1).
func nearZero(v, zero float64) bool {
	if v < 0 {
		return -v <= zero
	}

	return v <= zero
}

// snap returns 0 when v is near zero under the given threshold, v otherwise.
// Complexity: O(1).
func snap(v, zero float64) float64 {
	if nearZero(v, zero) {
		return 0
	}

	return v
}
