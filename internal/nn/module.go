// Package nn implements neural network layers on top of the shaped tensor.
//
// This package provides:
//   - Module interface: common interface for all layers
//   - Parameter: named weight/bias tensors
//   - Linear: fully connected layer over a single input vector
//   - ReLU: activation layer backed by a kernel backend
//   - Sequential: container for stacking layers
package nn

import (
	"github.com/born-ml/fuse/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Modules can be composed to build larger networks:
//
//	model := nn.NewSequential[float32](
//	    nn.NewLinear[float32](784, 128),
//	    nn.NewReLU(cpu.New[float32]()),
//	    nn.NewLinear[float32](128, 10),
//	)
type Module[T tensor.Numeric] interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.Tensor[T]) *tensor.Tensor[T]

	// Parameters returns the module's parameters, or nil if it has none.
	Parameters() []*Parameter[T]

	// StateDict returns the module's tensors keyed by parameter name.
	// The tensors are the module's own, not copies.
	StateDict() map[string]*tensor.Tensor[T]

	// LoadStateDict copies tensors from stateDict into the module.
	LoadStateDict(stateDict map[string]*tensor.Tensor[T]) error
}
