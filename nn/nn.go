// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand/v2"

	"github.com/x448/float16"

	"github.com/born-ml/fuse/internal/nn"
	"github.com/born-ml/fuse/tensor"
)

// Module is the interface shared by all layers.
type Module[T tensor.Numeric] = nn.Module[T]

// Parameter is a named tensor owned by a layer.
type Parameter[T tensor.Numeric] = nn.Parameter[T]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[T tensor.Numeric](name string, t *tensor.Tensor[T]) *Parameter[T] {
	return nn.NewParameter(name, t)
}

// Layers

// Linear is a fully connected layer: y[i] = b[i] + sum_j x[j] * W[i, j].
type Linear[T tensor.Numeric] = nn.Linear[T]

// NewLinear creates a linear layer with zero weights and bias.
//
// Example:
//
//	layer := nn.NewLinear[float32](784, 128)
//	layer.InitXavier(rng)
func NewLinear[T tensor.Numeric](inFeatures, outFeatures int) *Linear[T] {
	return nn.NewLinear[T](inFeatures, outFeatures)
}

// NewLinearFrom creates a linear layer from copies of a [out, in] weight and
// a [out] bias.
func NewLinearFrom[T tensor.Numeric](weight, bias *tensor.Tensor[T]) (*Linear[T], error) {
	return nn.NewLinearFrom(weight, bias)
}

// NewLinearFromFloat16 creates a float32 linear layer from half precision
// weights (row-major [out, in]) and bias.
func NewLinearFromFloat16(inFeatures, outFeatures int, weight, bias []float16.Float16) (*Linear[float32], error) {
	return nn.NewLinearFromFloat16(inFeatures, outFeatures, weight, bias)
}

// Activations

// ReLUBackend computes the ReLU kernel; cpu.Backend implements it.
type ReLUBackend[T tensor.Numeric] = nn.ReLUBackend[T]

// ReLU applies max(0, x) elementwise.
type ReLU[T tensor.Numeric] = nn.ReLU[T]

// NewReLU creates a ReLU layer running on backend.
//
// Example:
//
//	relu := nn.NewReLU[float32](cpu.New[float32]())
func NewReLU[T tensor.Numeric](backend ReLUBackend[T]) *ReLU[T] {
	return nn.NewReLU(backend)
}

// Containers

// Sequential chains modules, feeding each output to the next module.
type Sequential[T tensor.Numeric] = nn.Sequential[T]

// NewSequential creates a Sequential container from modules.
func NewSequential[T tensor.Numeric](modules ...Module[T]) *Sequential[T] {
	return nn.NewSequential(modules...)
}

// Initialization

// Xavier returns a tensor drawn from the Xavier/Glorot uniform distribution
// for a layer with the given fan-in and fan-out.
func Xavier[T tensor.Numeric](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand) *tensor.Tensor[T] {
	return nn.Xavier[T](fanIn, fanOut, shape, rng)
}
