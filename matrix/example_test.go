package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/lvnmf/matrix"
)

// ExampleGemm multiplies a factor by its own transpose (Gram matrix).
func ExampleGemm() {
	v, _ := matrix.NewDenseFrom(2, 3, []float64{
		1, 0, 2,
		0, 1, 1,
	})
	g, _ := matrix.NewDense(2, 2)
	_ = matrix.Gemm(false, true, 1, v, v, 0, g) // G = V·Vᵀ
	fmt.Print(g)

	// Output:
	// [5, 2]
	// [2, 2]
}

// ExampleNormalizeColumns shows unit-norm columns and the degenerate-column rule.
func ExampleNormalizeColumns() {
	u, _ := matrix.NewDenseFrom(2, 2, []float64{
		3, 0,
		4, 0,
	})
	_ = matrix.NormalizeColumns(u)
	fmt.Print(u)

	// Output:
	// [0.6, 0]
	// [0.8, 0]
}

// ExampleSparseVector_Sub measures the change of a column between two sweeps.
func ExampleSparseVector_Sub() {
	prev, _ := matrix.NewSparseVector(3)
	_ = prev.Set(1, 0.5)
	_ = prev.Set(3, 2)

	cur, _ := matrix.NewSparseVector(3)
	_ = cur.Set(1, 0.5)
	_ = cur.Set(3, 1.75)

	d, _ := prev.Sub(cur)
	fmt.Println(d.NNZ(), d.MaxAbsNorm())

	// Output:
	// 1 0.25
}
