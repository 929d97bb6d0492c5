package nn

import (
	"github.com/born-ml/fuse/internal/tensor"
)

// ReLUBackend is an interface for backends that support ReLU activation.
type ReLUBackend[T tensor.Numeric] interface {
	ReLU(x *tensor.Tensor[T]) *tensor.Tensor[T]
}

// ReLU is a Rectified Linear Unit activation module.
//
// Applies the element-wise function: f(x) = max(0, x)
//
// Example:
//
//	relu := nn.NewReLU(cpu.New[float32]())
//	output := relu.Forward(input)  // All negative values become 0
type ReLU[T tensor.Numeric] struct {
	backend ReLUBackend[T]
}

// NewReLU creates a new ReLU activation module.
func NewReLU[T tensor.Numeric](backend ReLUBackend[T]) *ReLU[T] {
	return &ReLU[T]{backend: backend}
}

// Forward applies ReLU activation: f(x) = max(0, x).
func (r *ReLU[T]) Forward(input *tensor.Tensor[T]) *tensor.Tensor[T] {
	return r.backend.ReLU(input)
}

// Parameters returns nil (ReLU has no parameters).
func (r *ReLU[T]) Parameters() []*Parameter[T] {
	return nil
}

// StateDict returns an empty map (ReLU has no parameters).
func (r *ReLU[T]) StateDict() map[string]*tensor.Tensor[T] {
	return map[string]*tensor.Tensor[T]{}
}

// LoadStateDict is a no-op (ReLU has no parameters).
func (r *ReLU[T]) LoadStateDict(_ map[string]*tensor.Tensor[T]) error {
	return nil
}
