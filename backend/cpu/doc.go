// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU kernels for fuse tensors.
//
// # Overview
//
// This package implements:
//   - 2D matrix multiplication (MatMul)
//   - Rectified linear unit (ReLU)
//   - Elementwise Add, Mul and MulScalar over flat storage
//   - Allocation-free *Into variants writing to caller-owned outputs
//
// MatMul with every dimension at most SmallMatMulDim, and ReLU over at most
// SmallActivationSize elements, take a fully unrolled path. Larger inputs use
// plain loops. Both paths produce bit-identical results; Config.Unroll turns
// the unrolled path off.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/fuse/backend/cpu"
//	    "github.com/born-ml/fuse/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New[float32]()
//
//	    x := tensor.FromValues[float32](tensor.Shape{4}, -1, 2, -3, 4)
//	    y := backend.ReLU(x) // [0 2 0 4]
//	}
//
// # Shape errors
//
// Kernels panic when operand shapes do not fit the operation. Use
// tensor.CheckShapes or tensor.CheckMatMul first to get an error instead.
package cpu
