package tensor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Rank returns the number of axes.
func (s Shape) Rank() int {
	return len(s)
}

// Validate checks that the shape has at least one axis, every dimension is > 0
// and the element count fits in an int.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: rank must be >= 1", ErrInvalidShape)
	}
	n := 1
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("%w: dimension at index %d is %d (must be > 0)", ErrInvalidShape, i, dim)
		}
		if n > math.MaxInt/dim {
			return fmt.Errorf("%w: element count of %v overflows int", ErrInvalidShape, s)
		}
		n *= dim
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// String formats the shape as [d0 d1 ...].
func (s Shape) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, dim := range s {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(dim))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Shaped is anything that reports a tensor shape.
type Shaped interface {
	Shape() Shape
}

// Shape returns s itself, so a bare Shape satisfies Shaped.
func (s Shape) Shape() Shape {
	return s
}

// ShapesMatch reports whether a and b have the same rank and the same
// dimension on every axis. It never panics.
func ShapesMatch(a, b Shaped) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Shape().Equal(b.Shape())
}

// CheckShapes returns an ErrShapeMismatch error naming op when a and b
// do not match. Use it at API boundaries before calling a kernel.
func CheckShapes(op string, a, b Shaped) error {
	if ShapesMatch(a, b) {
		return nil
	}
	return fmt.Errorf("%s: %w: %v vs %v", op, ErrShapeMismatch, shapeOf(a), shapeOf(b))
}

func shapeOf(s Shaped) Shape {
	if s == nil {
		return nil
	}
	return s.Shape()
}

// CheckMatMul validates operands of a [M,N] @ [N,K] product.
func CheckMatMul(a, b Shaped) error {
	as, bs := shapeOf(a), shapeOf(b)
	if len(as) != 2 || len(bs) != 2 {
		return fmt.Errorf("matmul: %w: need 2D operands, got %v and %v", ErrShapeMismatch, as, bs)
	}
	if as[1] != bs[0] {
		return fmt.Errorf("matmul: %w: %v @ %v", ErrShapeMismatch, as, bs)
	}
	return nil
}
