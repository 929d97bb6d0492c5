// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package expr provides lazily evaluated, fused elementwise expressions over
// fuse tensors.
//
// Composing an expression computes nothing. Materialize evaluates the whole
// tree element by element in a single row-major pass and allocates only the
// output tensor, so a + 2*b + c never builds the intermediate 2*b or a + 2*b.
//
// Example:
//
//	a := tensor.FromValues[float32](tensor.Shape{2, 2}, 1, 2, 3, 4)
//	b := tensor.FromValues[float32](tensor.Shape{2, 2}, 5, 6, 7, 8)
//
//	e := expr.Leaf(a).Add(expr.Scale(2, expr.Leaf(b)))
//	if err := expr.Validate(e, a.Shape()); err != nil {
//	    return err
//	}
//	out := expr.Materialize(e, a.Shape()) // [11 14 17 20]
//
// Leaves hold references: a tensor must outlive the expressions built on it.
package expr

import (
	"github.com/born-ml/fuse/internal/expr"
	"github.com/born-ml/fuse/tensor"
)

// Expr is an immutable expression node.
type Expr[T tensor.Numeric] = expr.Expr[T]

// Op is the pointwise operation of a binary node.
type Op = expr.Op

// Supported operations.
const (
	OpAdd = expr.OpAdd
	OpMul = expr.OpMul
)

// Kind identifies the variant of an expression node.
type Kind = expr.Kind

// Node kinds.
const (
	KindTensor = expr.KindTensor
	KindScalar = expr.KindScalar
	KindBinary = expr.KindBinary
)

// Leaf wraps a tensor reference as an expression.
func Leaf[T tensor.Numeric](t *tensor.Tensor[T]) *Expr[T] {
	return expr.Leaf(t)
}

// Scalar wraps a constant as an expression.
func Scalar[T tensor.Numeric](value T) *Expr[T] {
	return expr.Scalar(value)
}

// Combine joins two expressions with op.
func Combine[T tensor.Numeric](a, b *Expr[T], op Op) *Expr[T] {
	return expr.Combine(a, b, op)
}

// Scale multiplies e by the constant s.
func Scale[T tensor.Numeric](s T, e *Expr[T]) *Expr[T] {
	return expr.Scale(s, e)
}

// Materialize evaluates e into a new tensor of the given shape.
// Every tensor leaf must have that shape; see Validate.
func Materialize[T tensor.Numeric](e *Expr[T], shape tensor.Shape) *tensor.Tensor[T] {
	return expr.Materialize(e, shape)
}

// MaterializeInto evaluates e into dst without allocating.
func MaterializeInto[T tensor.Numeric](e *Expr[T], dst *tensor.Tensor[T]) {
	expr.MaterializeInto(e, dst)
}

// MustMaterialize validates e against shape and materializes it, panicking
// on a mismatch.
func MustMaterialize[T tensor.Numeric](e *Expr[T], shape tensor.Shape) *tensor.Tensor[T] {
	return expr.MustMaterialize(e, shape)
}

// Validate checks that every tensor leaf of e has the given shape.
func Validate[T tensor.Numeric](e *Expr[T], shape tensor.Shape) error {
	return expr.Validate(e, shape)
}

// Tensors returns the distinct tensors referenced by e.
func Tensors[T tensor.Numeric](e *Expr[T]) []*tensor.Tensor[T] {
	return expr.Tensors(e)
}
