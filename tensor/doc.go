// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides statically shaped numeric tensors for fuse.
//
// # Overview
//
// A tensor has a fixed rank and fixed dimensions chosen at construction and
// owns exactly as many elements as its shape describes, stored row-major.
// This package provides:
//   - Generic tensors over float32, float64, int32 and int64 (Tensor[T])
//   - Multi-index and flat (Data) access, both zero-copy
//   - Shape compatibility checks used by kernels and expressions
//   - Half precision import and export
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/fuse/backend/cpu"
//	    "github.com/born-ml/fuse/tensor"
//	)
//
//	func main() {
//	    a := tensor.FromValues[float32](tensor.Shape{2, 3}, 1, 2, 3, 4, 5, 6)
//	    b := tensor.FromValues[float32](tensor.Shape{3, 2}, 1, 2, 3, 4, 5, 6)
//
//	    c := cpu.New[float32]().MatMul(a, b) // [[22 28] [49 64]]
//	    fmt.Println(c.At(1, 1))               // 64
//	}
//
// # Indexing
//
// At and Set take one index per dimension. A wrong number of indices or a
// component outside its dimension panics; nothing is clamped or wrapped.
//
// # Shapes
//
// Shapes never change after construction. There is no reshape or broadcasting:
// operations require both operands to have identical shapes, which ShapesMatch
// and CheckShapes verify.
package tensor
