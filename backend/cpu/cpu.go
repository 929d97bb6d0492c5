// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/fuse/internal/backend/cpu"
	"github.com/born-ml/fuse/tensor"
)

// Backend is the CPU kernel set for element type T.
type Backend[T tensor.Numeric] = internalcpu.CPUBackend[T]

// Config controls kernel dispatch.
type Config = internalcpu.Config

// Size limits of the unrolled paths.
const (
	SmallMatMulDim      = internalcpu.SmallMatMulDim
	SmallActivationSize = internalcpu.SmallActivationSize
)

// DefaultConfig returns the configuration used by New.
func DefaultConfig() Config {
	return internalcpu.DefaultConfig()
}

// New creates a CPU backend with the default configuration.
//
// Example:
//
//	backend := cpu.New[float32]()
//	c := backend.MatMul(a, b)
func New[T tensor.Numeric]() *Backend[T] {
	return internalcpu.New[T]()
}

// NewWithConfig creates a CPU backend with the given configuration.
//
// Example:
//
//	generic := cpu.NewWithConfig[float32](cpu.Config{Unroll: false})
func NewWithConfig[T tensor.Numeric](cfg Config) *Backend[T] {
	return internalcpu.NewWithConfig[T](cfg)
}
