package expr

import (
	"fmt"

	"github.com/born-ml/fuse/internal/tensor"
)

// Validate checks that every tensor leaf of e has the given shape.
// The returned error wraps tensor.ErrShapeMismatch.
func Validate[T tensor.Numeric](e *Expr[T], shape tensor.Shape) error {
	if err := shape.Validate(); err != nil {
		return err
	}

	var err error
	Walk(e, func(leaf *Expr[T]) bool {
		if leaf.kind != KindTensor {
			return true
		}
		if !tensor.ShapesMatch(leaf.t, shape) {
			err = fmt.Errorf("%w: leaf %v vs output %v", tensor.ErrShapeMismatch, leaf.t.Shape(), shape)
			return false
		}
		return true
	})
	return err
}

// Walk visits the leaves of e left to right until visit returns false.
func Walk[T tensor.Numeric](e *Expr[T], visit func(leaf *Expr[T]) bool) bool {
	if e.kind != KindBinary {
		return visit(e)
	}
	return Walk(e.lhs, visit) && Walk(e.rhs, visit)
}

// Tensors returns the distinct tensors referenced by e, in leaf order.
func Tensors[T tensor.Numeric](e *Expr[T]) []*tensor.Tensor[T] {
	var out []*tensor.Tensor[T]
	seen := make(map[*tensor.Tensor[T]]bool)
	Walk(e, func(leaf *Expr[T]) bool {
		if leaf.kind == KindTensor && !seen[leaf.t] {
			seen[leaf.t] = true
			out = append(out, leaf.t)
		}
		return true
	})
	return out
}
