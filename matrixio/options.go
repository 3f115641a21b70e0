// SPDX-License-Identifier: MIT

package matrixio

import (
	"errors"
	"math"

	"github.com/katalvlaran/lvnmf/matrix"
)

// Sentinel errors for parsing and persistence.
var (
	// ErrMalformedLine is returned in strict mode for a line with an
	// unparsable value or without any value after the label.
	ErrMalformedLine = errors.New("matrixio: malformed line")

	// ErrEmptyInput is returned when the input holds no data rows.
	ErrEmptyInput = errors.New("matrixio: no data rows")

	// ErrNilMatrix is returned when a nil matrix is handed to a writer.
	ErrNilMatrix = errors.New("matrixio: nil matrix")
)

// Format literals.
const (
	// FieldSeparator separates the label and the values of an input line.
	FieldSeparator = "  "

	// OutputSeparator separates values of an output row.
	OutputSeparator = "\t"
)

// Option configures Parse and ReadFile.
type Option func(*options)

type options struct {
	zero   float64 // values with |v| <= zero are read as 0
	strict bool    // reject unparsable values instead of reading them as 0
}

func defaultOptions() options {
	return options{zero: matrix.DefaultZero}
}

// WithZero sets the near-zero threshold applied on ingestion; it is also the
// threshold carried by the parsed matrix. Negative or non-finite values are ignored.
func WithZero(z float64) Option {
	return func(o *options) {
		if z >= 0 && z <= math.MaxFloat64 {
			o.zero = z
		}
	}
}

// WithStrict makes unparsable values and label-only lines an error
// (ErrMalformedLine) instead of reading them as 0.
func WithStrict() Option {
	return func(o *options) { o.strict = true }
}
