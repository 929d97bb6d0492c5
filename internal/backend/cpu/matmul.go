package cpu

import (
	"fmt"

	"github.com/born-ml/fuse/internal/tensor"
)

// MatMul performs matrix multiplication: (M, N) @ (N, K) -> (M, K).
//
// When M, N and K are all <= SmallMatMulDim the (i, j) output loop is fully
// unrolled; otherwise three nested loops run in i, j, k order. Both paths
// accumulate in T and produce identical results.
func (cpu *CPUBackend[T]) MatMul(a, b *tensor.Tensor[T]) *tensor.Tensor[T] {
	m, n, k := matmulDims("matmul", a, b)
	result := tensor.Zeros[T](tensor.Shape{m, k})
	cpu.matmul(result.Data(), a.Data(), b.Data(), m, n, k)
	return result
}

// MatMulInto writes a @ b into dst, which must have shape (M, K) and must not
// alias a or b.
func (cpu *CPUBackend[T]) MatMulInto(dst, a, b *tensor.Tensor[T]) {
	m, n, k := matmulDims("matmul", a, b)
	if dst.Rank() != 2 || dst.Dim(0) != m || dst.Dim(1) != k {
		panic(fmt.Sprintf("matmul: output shape %v, want [%d %d]", dst.Shape(), m, k))
	}
	cpu.matmul(dst.Data(), a.Data(), b.Data(), m, n, k)
}

func (cpu *CPUBackend[T]) matmul(c, a, b []T, m, n, k int) {
	if cpu.cfg.Unroll && m <= SmallMatMulDim && n <= SmallMatMulDim && k <= SmallMatMulDim {
		matmulSmall(c, a, b, m, n, k)
		return
	}
	matmulGeneric(c, a, b, m, n, k)
}

// matmulDims validates a (M, N) @ (N, K) product and returns M, N, K.
func matmulDims(op string, a, b tensor.Shaped) (m, n, k int) {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("%s: only 2D tensors supported, got %dD and %dD", op, len(aShape), len(bShape)))
	}

	m, n = aShape[0], aShape[1]
	nAlt, k := bShape[0], bShape[1]

	if n != nAlt {
		panic(fmt.Sprintf("%s: shape mismatch [%d,%d] @ [%d,%d]", op, m, n, nAlt, k))
	}
	return m, n, k
}

// dot computes C[i,j] = sum_x A[i,x] * B[x,j] for row-major A (., n) and B (n, k).
// Both matmul paths go through it so their rounding is the same.
func dot[T tensor.Numeric](a, b []T, i, j, n, k int) T {
	var sum T
	row := a[i*n : i*n+n]
	for x := range row {
		sum += row[x] * b[x*k+j]
	}
	return sum
}

// matmulGeneric is the naive O(n³) loop nest.
func matmulGeneric[T tensor.Numeric](c, a, b []T, m, n, k int) {
	for i := 0; i < m; i++ {
		for j := 0; j < k; j++ {
			c[i*k+j] = dot(a, b, i, j, n, k)
		}
	}
}

// matmulSmall computes every output cell without an (i, j) loop.
// Cell p is (p/k, p%k); the switch falls through from the last cell to the first.
func matmulSmall[T tensor.Numeric](c, a, b []T, m, n, k int) {
	switch m * k {
	case 16:
		c[15] = dot(a, b, 15/k, 15%k, n, k)
		fallthrough
	case 15:
		c[14] = dot(a, b, 14/k, 14%k, n, k)
		fallthrough
	case 14:
		c[13] = dot(a, b, 13/k, 13%k, n, k)
		fallthrough
	case 13:
		c[12] = dot(a, b, 12/k, 12%k, n, k)
		fallthrough
	case 12:
		c[11] = dot(a, b, 11/k, 11%k, n, k)
		fallthrough
	case 11:
		c[10] = dot(a, b, 10/k, 10%k, n, k)
		fallthrough
	case 10:
		c[9] = dot(a, b, 9/k, 9%k, n, k)
		fallthrough
	case 9:
		c[8] = dot(a, b, 8/k, 8%k, n, k)
		fallthrough
	case 8:
		c[7] = dot(a, b, 7/k, 7%k, n, k)
		fallthrough
	case 7:
		c[6] = dot(a, b, 6/k, 6%k, n, k)
		fallthrough
	case 6:
		c[5] = dot(a, b, 5/k, 5%k, n, k)
		fallthrough
	case 5:
		c[4] = dot(a, b, 4/k, 4%k, n, k)
		fallthrough
	case 4:
		c[3] = dot(a, b, 3/k, 3%k, n, k)
		fallthrough
	case 3:
		c[2] = dot(a, b, 2/k, 2%k, n, k)
		fallthrough
	case 2:
		c[1] = dot(a, b, 1/k, 1%k, n, k)
		fallthrough
	case 1:
		c[0] = dot(a, b, 0/k, 0%k, n, k)
	}
}
