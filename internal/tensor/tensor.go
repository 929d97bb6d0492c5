package tensor

import "fmt"

// Tensor is a dense, row-major tensor of element type T with a fixed shape.
//
// The shape is set at construction and never changes; the backing slice always
// holds exactly Shape().NumElements() values. A Tensor owns its storage:
// Clone produces a fully independent copy.
//
// Example:
//
//	t := tensor.FromValues[float32](tensor.Shape{2, 3}, 1, 2, 3, 4, 5, 6)
//	v := t.At(1, 2) // 6
type Tensor[T Numeric] struct {
	shape   Shape
	strides []int
	data    []T
}

// newTensor wraps data without copying. Callers guarantee len(data) matches shape.
func newTensor[T Numeric](shape Shape, data []T) *Tensor[T] {
	return &Tensor[T]{
		shape:   shape.Clone(),
		strides: shape.ComputeStrides(),
		data:    data,
	}
}

// Shape returns a copy of the tensor's shape.
func (t *Tensor[T]) Shape() Shape {
	if t == nil {
		return nil
	}
	return t.shape.Clone()
}

// Rank returns the number of axes.
func (t *Tensor[T]) Rank() int {
	return len(t.shape)
}

// Dim returns the size of a single axis.
func (t *Tensor[T]) Dim(axis int) int {
	return t.shape[axis]
}

// NumElements returns the total number of elements.
func (t *Tensor[T]) NumElements() int {
	return len(t.data)
}

// DType returns the tensor's data type.
func (t *Tensor[T]) DType() DataType {
	return DataTypeOf[T]()
}

// Strides returns the row-major strides of the tensor.
func (t *Tensor[T]) Strides() []int {
	strides := make([]int, len(t.strides))
	copy(strides, t.strides)
	return strides
}

// Data returns a linear view of the tensor's elements in row-major order.
// The slice directly accesses the underlying memory (zero-copy).
//
// WARNING: Modifications to the returned slice will modify the tensor.
func (t *Tensor[T]) Data() []T {
	return t.data
}

// offset computes the linear offset of indices.
// Panics on rank mismatch or out-of-range components.
func (t *Tensor[T]) offset(indices []int) int {
	return Offset(t.shape, indices)
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
//
// Example:
//
//	t := tensor.Zeros[float32](Shape{3, 4})
//	value := t.At(1, 2) // Row 1, column 2
func (t *Tensor[T]) At(indices ...int) T {
	return t.data[t.offset(indices)]
}

// Set sets the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor[T]) Set(value T, indices ...int) {
	t.data[t.offset(indices)] = value
}

// String returns a human-readable summary of the tensor.
func (t *Tensor[T]) String() string {
	return fmt.Sprintf("Tensor[%s]%v", t.DType(), t.shape)
}

// Clone creates a deep copy of the tensor.
func (t *Tensor[T]) Clone() *Tensor[T] {
	data := make([]T, len(t.data))
	copy(data, t.data)
	return newTensor(t.shape, data)
}

// CopyFrom overwrites t's elements with src's. Shapes must match.
func (t *Tensor[T]) CopyFrom(src *Tensor[T]) {
	if !t.shape.Equal(src.shape) {
		panic(fmt.Sprintf("copy: shape mismatch %v vs %v", t.shape, src.shape))
	}
	copy(t.data, src.data)
}

// Fill sets every element to value.
func (t *Tensor[T]) Fill(value T) {
	for i := range t.data {
		t.data[i] = value
	}
}
