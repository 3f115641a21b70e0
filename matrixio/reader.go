// SPDX-License-Identifier: MIT

package matrixio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvnmf/matrix"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 16 << 20

// Parse reads a labelled, two-space delimited matrix:
//
//	r1  1.0  2.0  3.0
//	r2  2.0  3.0  4.0
//
// The first field of every line is a label and is discarded. Rows = number of
// non-blank lines; Cols = max field count minus one, shorter rows are padded
// with zeros. Unparsable and near-zero values are read as 0 unless WithStrict
// is set.
//
// Errors:
//   - ErrEmptyInput, ErrMalformedLine (strict mode), reader errors.
//
// Complexity:
//   - Time O(bytes), Space O(rows*cols).
func Parse(r io.Reader, opts ...Option) (*matrix.Dense, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	var (
		rows [][]float64
		cols int
		line int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		row, err := parseLine(text, o)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(row) > cols {
			cols = len(row)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("matrixio: read: %w", err)
	}
	if len(rows) == 0 || cols == 0 {
		return nil, ErrEmptyInput
	}

	data := make([]float64, len(rows)*cols)
	for i, row := range rows {
		copy(data[i*cols:], row)
	}

	return matrix.NewDenseFrom(len(rows), cols, data, matrix.WithZero(o.zero))
}

// parseLine splits one line on FieldSeparator and parses every field after the label.
func parseLine(text string, o options) ([]float64, error) {
	fields := strings.Split(text, FieldSeparator)
	if len(fields) < 2 && o.strict {
		return nil, fmt.Errorf("%w: no values after label %q", ErrMalformedLine, fields[0])
	}
	row := make([]float64, 0, len(fields)-1)
	for _, f := range fields[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			if o.strict {
				return nil, fmt.Errorf("%w: value %q", ErrMalformedLine, f)
			}
			v = 0
		}
		if math.Abs(v) <= o.zero {
			v = 0
		}
		row = append(row, v)
	}

	return row, nil
}

// ReadFile opens path and parses it with Parse.
//
// Errors:
//   - os errors (wrapped), plus every Parse error.
func ReadFile(path string, opts ...Option) (*matrix.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("matrixio: %w", err)
	}
	defer f.Close()

	m, err := Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("matrixio: %s: %w", path, err)
	}

	return m, nil
}
