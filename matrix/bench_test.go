// Package matrix_test provides benchmarks for core matrix package operations,
// using deterministic random fill for Dense matrices.
package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/lvnmf/matrix"
)

// benchSizes are the matrix sizes to benchmark.
var benchSizes = []int{64, 128, 256}

// sinks to defeat dead-code elimination
var (
	sinkM *matrix.Dense
	sinkF float64
)

func BenchmarkSub(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := MustDense(b, n, n)
			B := MustDense(b, n, n)
			RandomFill(b, A, 11, -1, 1)
			RandomFill(b, B, 22, -1, 1)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Sub(A, B)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkGemm(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := MustDense(b, n, n)
			B := MustDense(b, n, n)
			C := MustDense(b, n, n)
			RandomFill(b, A, 1, 0, 1)
			RandomFill(b, B, 2, 0, 1)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := matrix.Gemm(false, true, 1, A, B, 0, C); err != nil {
					b.Fatal(err)
				}
			}
			sinkM = C
		})
	}
}

func BenchmarkNormalizeColumns(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := MustDense(b, n, n)
			RandomFill(b, A, 5, 0, 10)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := matrix.NormalizeColumns(A); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSparseColumnDelta(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := MustDense(b, n, 2)
			RandomFill(b, A, 9, 0, 1)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				prev, _ := A.SparseColumn(0)
				cur, _ := A.SparseColumn(1)
				d, err := prev.Sub(cur)
				if err != nil {
					b.Fatal(err)
				}
				sinkF = d.MaxAbsNorm()
			}
		})
	}
}
