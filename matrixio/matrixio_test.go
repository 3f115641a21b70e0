// SPDX-License-Identifier: MIT
package matrixio_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/lvnmf/matrix"
	"github.com/katalvlaran/lvnmf/matrixio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowsOf(t *testing.T, m *matrix.Dense) [][]float64 {
	t.Helper()
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i] = make([]float64, m.Cols())
		for j := range out[i] {
			v, err := m.At(i, j)
			require.NoError(t, err)
			out[i][j] = v
		}
	}

	return out
}

func TestParse_TwoRows(t *testing.T) {
	m, err := matrixio.Parse(strings.NewReader("r1  1.0  2.0  3.0\nr2  2.0  3.0  4.0\n"))
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())
	require.Equal(t, [][]float64{{1, 2, 3}, {2, 3, 4}}, rowsOf(t, m))
}

func TestParse_LenientCoercion(t *testing.T) {
	in := "a  1  x  1e-9\r\n\n" + // unparsable and near-zero become 0, CRLF and blank lines tolerated
		"b  5\n" + // short row is zero-padded
		"c  NaN  2  3\n"
	m, err := matrixio.Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, [][]float64{
		{1, 0, 0},
		{5, 0, 0},
		{0, 2, 3},
	}, rowsOf(t, m))
	require.Equal(t, matrix.DefaultZero, m.Zero())
}

func TestParse_WithZero(t *testing.T) {
	m, err := matrixio.Parse(strings.NewReader("r  0.5  2\n"), matrixio.WithZero(1))
	require.NoError(t, err)
	require.Equal(t, [][]float64{{0, 2}}, rowsOf(t, m))
	require.Equal(t, 1.0, m.Zero())
}

func TestParse_Strict(t *testing.T) {
	_, err := matrixio.Parse(strings.NewReader("r1  1  2\nr2  1  oops\n"), matrixio.WithStrict())
	require.ErrorIs(t, err, matrixio.ErrMalformedLine)
	assert.Contains(t, err.Error(), "line 2")

	_, err = matrixio.Parse(strings.NewReader("onlylabel\n"), matrixio.WithStrict())
	require.ErrorIs(t, err, matrixio.ErrMalformedLine)
}

func TestParse_Empty(t *testing.T) {
	for _, in := range []string{"", "\n\n", "label\nother\n"} {
		_, err := matrixio.Parse(strings.NewReader(in))
		require.ErrorIs(t, err, matrixio.ErrEmptyInput, "input %q", in)
	}
}

func TestWrite_TabSeparated(t *testing.T) {
	m, err := matrix.NewDenseFrom(2, 3, []float64{1, 0.5, 0, 2, 3.25, 1e-12})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, matrixio.Write(&buf, m))
	require.Equal(t, "1\t0.5\t0\n2\t3.25\t1e-12\n", buf.String())

	require.ErrorIs(t, matrixio.Write(&buf, nil), matrixio.ErrNilMatrix)
}

func TestSaveFactors_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "result")
	d, _ := matrix.NewDenseFrom(1, 2, []float64{1, 2})
	u, _ := matrix.NewDenseFrom(1, 1, []float64{3})
	v, _ := matrix.NewDenseFrom(1, 2, []float64{4, 5})

	p := matrixio.FilePersister{Base: base}
	require.NoError(t, p.Persist(d, u, v))
	// second run truncates instead of appending
	require.NoError(t, p.Persist(d, u, v))

	for suffix, want := range map[string]string{
		matrixio.SuffixD: "1\t2\n",
		matrixio.SuffixU: "3\n",
		matrixio.SuffixV: "4\t5\n",
	} {
		got, err := os.ReadFile(base + suffix)
		require.NoError(t, err)
		require.Equal(t, want, string(got), suffix)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("x  1  2\ny  3  4\n"), 0o600))

	m, err := matrixio.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 2}, {3, 4}}, rowsOf(t, m))

	_, err = matrixio.ReadFile(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)

	require.Error(t, matrixio.WriteFile(filepath.Join(t.TempDir(), "no", "such", "dir"), m))
}
