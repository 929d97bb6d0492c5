package expr

import (
	"fmt"

	"github.com/born-ml/fuse/internal/tensor"
)

// At evaluates the expression at a single multi-dimensional index.
// Tensor leaves read At(index...), scalar leaves ignore the index, and
// binary nodes apply their op to both children at the same index.
func (e *Expr[T]) At(index ...int) T {
	switch e.kind {
	case KindTensor:
		return e.t.At(index...)
	case KindScalar:
		return e.value
	default:
		return Apply(e.op, e.lhs.At(index...), e.rhs.At(index...))
	}
}

// at evaluates the expression at a row-major linear offset.
// Every tensor leaf shares the output shape, so the offset of an index is
// the same in every leaf and in the output.
func (e *Expr[T]) at(off int) T {
	switch e.kind {
	case KindTensor:
		return e.t.Data()[off]
	case KindScalar:
		return e.value
	}

	a, b := e.lhs.at(off), e.rhs.at(off)
	if e.op == OpAdd {
		return a + b
	}
	return a * b
}

// Materialize allocates a tensor of the given shape and fills it with the
// value of e at every index, in row-major order, in a single pass.
//
// Every tensor leaf reachable from e must have exactly this shape. This is
// not checked; call Validate first when shapes come from untrusted input.
func Materialize[T tensor.Numeric](e *Expr[T], shape tensor.Shape) *tensor.Tensor[T] {
	out := tensor.Zeros[T](shape)
	fill(e, out.Data())
	return out
}

// MaterializeInto evaluates e into dst without allocating.
// dst may be one of e's leaves: each element is read before it is written
// and no element is read after its own write.
func MaterializeInto[T tensor.Numeric](e *Expr[T], dst *tensor.Tensor[T]) {
	fill(e, dst.Data())
}

func fill[T tensor.Numeric](e *Expr[T], dst []T) {
	switch e.kind {
	case KindScalar:
		for i := range dst {
			dst[i] = e.value
		}
		return
	case KindTensor:
		copy(dst, e.t.Data())
		return
	}

	// Two tensor leaves under one op is the common case; keep it branch-free.
	if e.lhs.kind == KindTensor && e.rhs.kind == KindTensor {
		a, b := e.lhs.t.Data(), e.rhs.t.Data()
		a, b = a[:len(dst)], b[:len(dst)]
		if e.op == OpAdd {
			for i := range dst {
				dst[i] = a[i] + b[i]
			}
		} else {
			for i := range dst {
				dst[i] = a[i] * b[i]
			}
		}
		return
	}

	for i := range dst {
		dst[i] = e.at(i)
	}
}

// MustMaterialize validates e against shape and materializes it.
// Panics with a descriptive message when any tensor leaf has another shape.
func MustMaterialize[T tensor.Numeric](e *Expr[T], shape tensor.Shape) *tensor.Tensor[T] {
	if err := Validate(e, shape); err != nil {
		panic(fmt.Sprintf("materialize: %v", err))
	}
	return Materialize(e, shape)
}
