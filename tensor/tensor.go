// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand/v2"

	"github.com/x448/float16"

	"github.com/born-ml/fuse/internal/tensor"
)

// Numeric is the constraint for tensor element types.
type Numeric = tensor.Numeric

// DataType is the runtime tag of an element type.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3} is a matrix with 2 rows and 3 columns.
type Shape = tensor.Shape

// Shaped is anything with a shape: tensors, expressions and Shape itself.
type Shaped = tensor.Shaped

// Tensor is a fixed-shape tensor owning its row-major storage.
//
// Example:
//
//	x := tensor.Zeros[float32](tensor.Shape{2, 3})
//	x.Set(1.5, 0, 2)
//	fmt.Println(x.At(0, 2)) // 1.5
type Tensor[T Numeric] = tensor.Tensor[T]

// Errors returned by validation helpers.
var (
	ErrInvalidShape  = tensor.ErrInvalidShape
	ErrShapeMismatch = tensor.ErrShapeMismatch
	ErrLength        = tensor.ErrLength
)

// DataTypeOf returns the DataType of T.
func DataTypeOf[T Numeric]() DataType {
	return tensor.DataTypeOf[T]()
}

// Creation functions

// Zeros creates a zero-filled tensor. Panics if shape is invalid.
//
// Example:
//
//	x := tensor.Zeros[float32](tensor.Shape{2, 3})
func Zeros[T Numeric](shape Shape) *Tensor[T] {
	return tensor.Zeros[T](shape)
}

// FromValues creates a tensor from values in row-major order. Missing values
// are zero and extra values are ignored.
//
// Example:
//
//	x := tensor.FromValues[float32](tensor.Shape{2, 2}, 1, 2, 3, 4)
func FromValues[T Numeric](shape Shape, values ...T) *Tensor[T] {
	return tensor.FromValues(shape, values...)
}

// FromSlice creates a tensor from a copy of data, which must hold exactly
// shape.NumElements() values.
//
// Example:
//
//	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
func FromSlice[T Numeric](data []T, shape Shape) (*Tensor[T], error) {
	return tensor.FromSlice(data, shape)
}

// Full creates a tensor filled with value.
func Full[T Numeric](shape Shape, value T) *Tensor[T] {
	return tensor.Full(shape, value)
}

// Ones creates a tensor filled with ones.
func Ones[T Numeric](shape Shape) *Tensor[T] {
	return tensor.Ones[T](shape)
}

// Eye creates an n x n identity matrix.
//
// Example:
//
//	identity := tensor.Eye[float32](3)
func Eye[T Numeric](n int) *Tensor[T] {
	return tensor.Eye[T](n)
}

// Arange creates a 1D tensor [start, start+1, ..., start+n-1].
func Arange[T Numeric](start T, n int) *Tensor[T] {
	return tensor.Arange(start, n)
}

// RandUniform creates a tensor with values drawn uniformly from [lo, hi) using rng.
func RandUniform[T Numeric](shape Shape, lo, hi float64, rng *rand.Rand) *Tensor[T] {
	return tensor.RandUniform[T](shape, lo, hi, rng)
}

// Half precision

// FromFloat16 creates a float32 tensor from half precision values.
func FromFloat16(shape Shape, values []float16.Float16) *Tensor[float32] {
	return tensor.FromFloat16(shape, values)
}

// FromFloat16Bits is FromFloat16 for raw IEEE 754 binary16 bit patterns.
func FromFloat16Bits(shape Shape, bits []uint16) *Tensor[float32] {
	return tensor.FromFloat16Bits(shape, bits)
}

// ToFloat16 converts every element of t to half precision.
func ToFloat16[T Numeric](t *Tensor[T]) []float16.Float16 {
	return tensor.ToFloat16(t)
}

// Shape utilities

// ShapesMatch reports whether a and b have the same rank and dimensions.
func ShapesMatch(a, b Shaped) bool {
	return tensor.ShapesMatch(a, b)
}

// CheckShapes returns an error wrapping ErrShapeMismatch when a and b differ.
func CheckShapes(op string, a, b Shaped) error {
	return tensor.CheckShapes(op, a, b)
}

// CheckMatMul returns an error unless a is [M, N] and b is [N, K].
func CheckMatMul(a, b Shaped) error {
	return tensor.CheckMatMul(a, b)
}

// Offset returns the row-major flat offset of index within shape.
func Offset(shape Shape, index []int) int {
	return tensor.Offset(shape, index)
}

// Unravel converts a flat offset back into a multi-index, writing into dst
// when it has room.
func Unravel(shape Shape, offset int, dst []int) []int {
	return tensor.Unravel(shape, offset, dst)
}

// NextIndex advances index to the next position in row-major order and
// reports false once it wraps past the last element.
func NextIndex(shape Shape, index []int) bool {
	return tensor.NextIndex(shape, index)
}
