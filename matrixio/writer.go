// SPDX-License-Identifier: MIT

package matrixio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/katalvlaran/lvnmf/matrix"
)

// Suffixes appended to the base name by SaveFactors.
const (
	SuffixD = "D"
	SuffixU = "U"
	SuffixV = "V"
)

// Write emits m as tab-separated rows, one row per line, no header.
// Values use the shortest decimal form that round-trips (strconv 'g', -1).
//
// Errors:
//   - ErrNilMatrix, writer errors.
//
// Complexity:
//   - Time O(r*c).
func Write(w io.Writer, m *matrix.Dense) error {
	if m == nil {
		return ErrNilMatrix
	}
	bw := bufio.NewWriter(w)
	raw := m.RawMatrix()
	buf := make([]byte, 0, 32)
	for i := 0; i < raw.Rows; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols]
		for j, v := range row {
			if j > 0 {
				if _, err := bw.WriteString(OutputSeparator); err != nil {
					return err
				}
			}
			buf = strconv.AppendFloat(buf[:0], v, 'g', -1, 64)
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteFile writes m to path, creating or truncating the file.
func WriteFile(path string, m *matrix.Dense) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("matrixio: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err = Write(f, m); err != nil {
		return fmt.Errorf("matrixio: %s: %w", path, err)
	}

	return nil
}

// SaveFactors writes d, u and v to base+"D", base+"U" and base+"V".
// It stops at the first failing file.
func SaveFactors(base string, d, u, v *matrix.Dense) error {
	targets := []struct {
		suffix string
		m      *matrix.Dense
	}{
		{SuffixD, d},
		{SuffixU, u},
		{SuffixV, v},
	}
	for _, t := range targets {
		if err := WriteFile(base+t.suffix, t.m); err != nil {
			return err
		}
	}

	return nil
}

// FilePersister saves the final factors of a run with SaveFactors.
// It satisfies nmf.Persister.
type FilePersister struct {
	// Base is the common path prefix of the three output files.
	Base string
}

// Persist writes d, u and v next to each other under p.Base.
func (p FilePersister) Persist(d, u, v *matrix.Dense) error {
	return SaveFactors(p.Base, d, u, v)
}
