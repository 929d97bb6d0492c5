package cpu

import "github.com/born-ml/fuse/internal/tensor"

// Add performs element-wise addition of two tensors of the same shape.
// Panics if the shapes differ.
func (cpu *CPUBackend[T]) Add(a, b *tensor.Tensor[T]) *tensor.Tensor[T] {
	mustMatch("add", a, b)
	result := tensor.Zeros[T](a.Shape())
	addVectorized(result.Data(), a.Data(), b.Data())
	return result
}

// AddInto writes a + b into dst. All three shapes must match; dst may alias a or b.
func (cpu *CPUBackend[T]) AddInto(dst, a, b *tensor.Tensor[T]) {
	mustMatch("add", a, b)
	mustMatch("add", dst, a)
	addVectorized(dst.Data(), a.Data(), b.Data())
}

// Mul performs element-wise multiplication of two tensors of the same shape.
// Panics if the shapes differ.
func (cpu *CPUBackend[T]) Mul(a, b *tensor.Tensor[T]) *tensor.Tensor[T] {
	mustMatch("mul", a, b)
	result := tensor.Zeros[T](a.Shape())
	mulVectorized(result.Data(), a.Data(), b.Data())
	return result
}

// MulScalar multiplies every element of a by s.
func (cpu *CPUBackend[T]) MulScalar(a *tensor.Tensor[T], s T) *tensor.Tensor[T] {
	result := tensor.Zeros[T](a.Shape())
	dst, src := result.Data(), a.Data()
	for i := range src {
		dst[i] = src[i] * s
	}
	return result
}

func addVectorized[T tensor.Numeric](dst, a, b []T) {
	b = b[:len(a)]
	dst = dst[:len(a)]
	for i := range a {
		dst[i] = a[i] + b[i]
	}
}

func mulVectorized[T tensor.Numeric](dst, a, b []T) {
	b = b[:len(a)]
	dst = dst[:len(a)]
	for i := range a {
		dst[i] = a[i] * b[i]
	}
}
