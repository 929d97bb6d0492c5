// Package expr implements lazily evaluated elementwise tensor expressions.
//
// Expressions are built from tensor and scalar leaves combined with Add and
// Mul. Nothing is computed while composing: an arbitrarily deep expression is
// evaluated in one pass by Materialize, which allocates only the output tensor.
//
// Example:
//
//	a := tensor.FromValues[float32](tensor.Shape{2, 2}, 1, 2, 3, 4)
//	b := tensor.FromValues[float32](tensor.Shape{2, 2}, 5, 6, 7, 8)
//	e := expr.Leaf(a).Add(expr.Scale(2, expr.Leaf(b)))
//	out := expr.Materialize(e, a.Shape()) // [11 14 17 20]
package expr

import (
	"fmt"

	"github.com/born-ml/fuse/internal/tensor"
)

// Op is the pointwise operation of a binary node.
type Op uint8

// Supported operations.
const (
	OpAdd Op = iota
	OpMul
)

// Apply computes a op b.
func Apply[T tensor.Numeric](op Op, a, b T) T {
	switch op {
	case OpAdd:
		return a + b
	case OpMul:
		return a * b
	default:
		panic(fmt.Sprintf("expr: unknown op %d", op))
	}
}

// String returns the operator symbol.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpMul:
		return "*"
	default:
		return "?"
	}
}

// Kind identifies the variant of an expression node.
type Kind uint8

// Node kinds.
const (
	KindTensor Kind = iota
	KindScalar
	KindBinary
)

// Expr is an immutable expression node.
//
// A tensor leaf holds a non-owning reference: the tensor must outlive every
// expression built on it, and writes to the tensor before materialization are
// visible in the result.
type Expr[T tensor.Numeric] struct {
	kind   Kind
	t      *tensor.Tensor[T]
	value  T
	op     Op
	lhs    *Expr[T]
	rhs    *Expr[T]
	leaves int
	depth  int
}

// Leaf wraps a tensor reference as an expression.
func Leaf[T tensor.Numeric](t *tensor.Tensor[T]) *Expr[T] {
	if t == nil {
		panic("expr: nil tensor leaf")
	}
	return &Expr[T]{kind: KindTensor, t: t, leaves: 1, depth: 1}
}

// Scalar wraps a constant. It evaluates to value at every index.
func Scalar[T tensor.Numeric](value T) *Expr[T] {
	return &Expr[T]{kind: KindScalar, value: value, leaves: 1, depth: 1}
}

// Combine returns the pointwise application of op to a and b.
// No shape check happens here; see Validate.
func Combine[T tensor.Numeric](a, b *Expr[T], op Op) *Expr[T] {
	if a == nil || b == nil {
		panic("expr: nil operand")
	}
	return &Expr[T]{
		kind:   KindBinary,
		op:     op,
		lhs:    a,
		rhs:    b,
		leaves: a.leaves + b.leaves,
		depth:  max(a.depth, b.depth) + 1,
	}
}

// Scale returns s * e.
func Scale[T tensor.Numeric](s T, e *Expr[T]) *Expr[T] {
	return Combine(Scalar(s), e, OpMul)
}

// Add returns e + other.
func (e *Expr[T]) Add(other *Expr[T]) *Expr[T] {
	return Combine(e, other, OpAdd)
}

// Mul returns e * other.
func (e *Expr[T]) Mul(other *Expr[T]) *Expr[T] {
	return Combine(e, other, OpMul)
}

// Kind returns the node variant.
func (e *Expr[T]) Kind() Kind {
	return e.kind
}

// Op returns the operation of a binary node.
func (e *Expr[T]) Op() Op {
	return e.op
}

// Children returns the operands of a binary node, or nil for leaves.
func (e *Expr[T]) Children() (lhs, rhs *Expr[T]) {
	return e.lhs, e.rhs
}

// Tensor returns the referenced tensor of a tensor leaf, or nil.
func (e *Expr[T]) Tensor() *tensor.Tensor[T] {
	return e.t
}

// Value returns the constant of a scalar leaf.
func (e *Expr[T]) Value() T {
	return e.value
}

// Leaves returns the number of leaf nodes in the tree.
func (e *Expr[T]) Leaves() int {
	return e.leaves
}

// Depth returns the height of the tree; a leaf has depth 1.
func (e *Expr[T]) Depth() int {
	return e.depth
}

// String renders the expression with tensor leaves shown by shape.
func (e *Expr[T]) String() string {
	switch e.kind {
	case KindTensor:
		return "T" + e.t.Shape().String()
	case KindScalar:
		return fmt.Sprint(e.value)
	default:
		return "(" + e.lhs.String() + " " + e.op.String() + " " + e.rhs.String() + ")"
	}
}
