// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers over fuse tensors.
//
// # Overview
//
// This package contains:
//   - Layers: Linear
//   - Activations: ReLU
//   - Utilities: Sequential, Module interface, Parameter
//   - Initialization: Xavier
//
// Layers work on a single input vector. A Linear layer with in inputs and out
// outputs maps a [in] tensor to a [out] tensor.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/fuse/backend/cpu"
//	    "github.com/born-ml/fuse/nn"
//	    "github.com/born-ml/fuse/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New[float32]()
//	    rng := rand.New(rand.NewPCG(1, 2))
//
//	    hidden := nn.NewLinear[float32](784, 128)
//	    hidden.InitXavier(rng)
//	    output := nn.NewLinear[float32](128, 10)
//	    output.InitXavier(rng)
//
//	    model := nn.NewSequential[float32](hidden, nn.NewReLU[float32](backend), output)
//	    logits := model.Forward(input) // [10]
//	}
//
// # Parameters
//
// Weight and Bias return the layer's own tensors. Writing to them changes the
// layer in place; their shapes never change.
package nn
