package nn

import (
	"github.com/born-ml/fuse/internal/tensor"
)

// Parameter is a named tensor owned by a layer, such as a weight or bias.
//
// The tensor is returned by reference so callers can assign values in place;
// its shape never changes.
//
// Example:
//
//	weight := nn.NewParameter("weight", weightTensor)
//	weight.Tensor().Set(0.5, 0, 1)
type Parameter[T tensor.Numeric] struct {
	name   string
	tensor *tensor.Tensor[T]
}

// NewParameter creates a new parameter.
func NewParameter[T tensor.Numeric](name string, t *tensor.Tensor[T]) *Parameter[T] {
	return &Parameter[T]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[T]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[T]) Tensor() *tensor.Tensor[T] {
	return p.tensor
}
