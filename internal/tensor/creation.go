package tensor

import (
	"fmt"
	"math/rand/v2"
)

// Zeros creates a tensor filled with zeros.
// Panics if the shape is invalid.
//
// Example:
//
//	t := tensor.Zeros[float32](Shape{3, 4})
func Zeros[T Numeric](shape Shape) *Tensor[T] {
	if err := shape.Validate(); err != nil {
		panic(err)
	}

	// Data is already zero-initialized by make()
	return newTensor(shape, make([]T, shape.NumElements()))
}

// FromValues creates a tensor and copies values into it in row-major order.
// Values beyond the tensor size are ignored; missing values stay zero.
//
// Example:
//
//	t := tensor.FromValues[float32](Shape{2, 2}, 1, 2, 3) // [[1 2] [3 0]]
func FromValues[T Numeric](shape Shape, values ...T) *Tensor[T] {
	t := Zeros[T](shape)
	copy(t.data, values)
	return t
}

// FromSlice creates a tensor from a Go slice whose length must equal the
// number of elements of shape. The slice is copied into the tensor's memory.
func FromSlice[T Numeric](data []T, shape Shape) (*Tensor[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, but got %d", ErrLength, shape, shape.NumElements(), len(data))
	}

	t := Zeros[T](shape)
	copy(t.data, data)
	return t, nil
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full[float32](Shape{3, 3}, 3.14)
func Full[T Numeric](shape Shape, value T) *Tensor[T] {
	t := Zeros[T](shape)
	t.Fill(value)
	return t
}

// Ones creates a tensor filled with ones.
func Ones[T Numeric](shape Shape) *Tensor[T] {
	return Full[T](shape, 1)
}

// Eye creates an n x n identity matrix.
//
// Example:
//
//	t := tensor.Eye[float32](3) // 3x3 identity matrix
func Eye[T Numeric](n int) *Tensor[T] {
	t := Zeros[T](Shape{n, n})
	for i := 0; i < n; i++ {
		t.data[i*n+i] = 1
	}
	return t
}

// Arange creates a 1D tensor holding start, start+1, ..., start+n-1.
func Arange[T Numeric](start T, n int) *Tensor[T] {
	t := Zeros[T](Shape{n})
	for i := range t.data {
		t.data[i] = start + T(i)
	}
	return t
}

// RandUniform creates a tensor with values drawn uniformly from [lo, hi).
// The caller supplies the generator, so repeated runs with the same seed
// produce identical tensors.
func RandUniform[T Numeric](shape Shape, lo, hi float64, rng *rand.Rand) *Tensor[T] {
	t := Zeros[T](shape)
	span := hi - lo
	for i := range t.data {
		t.data[i] = T(lo + rng.Float64()*span)
	}
	return t
}
