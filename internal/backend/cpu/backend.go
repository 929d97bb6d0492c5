// Package cpu implements the CPU kernels: matrix multiplication, ReLU and
// elementwise arithmetic, each with an unrolled path for small operands.
package cpu

import (
	"fmt"

	"github.com/born-ml/fuse/internal/tensor"
)

// Size thresholds below which kernels take the unrolled path.
const (
	// SmallMatMulDim bounds M, N and K of an unrolled matrix product.
	SmallMatMulDim = 4
	// SmallActivationSize bounds the element count of an unrolled activation.
	SmallActivationSize = 16
)

// Config controls kernel dispatch.
type Config struct {
	// Unroll enables the unrolled small-size paths. Results are identical
	// either way; disabling it is useful to time the generic loops.
	Unroll bool
}

// DefaultConfig returns the configuration used by New.
func DefaultConfig() Config {
	return Config{Unroll: true}
}

// CPUBackend runs tensor kernels for element type T on the CPU.
// It holds no mutable state and may be shared freely.
type CPUBackend[T tensor.Numeric] struct {
	cfg Config
}

// New creates a new CPU backend with the default configuration.
func New[T tensor.Numeric]() *CPUBackend[T] {
	return NewWithConfig[T](DefaultConfig())
}

// NewWithConfig creates a CPU backend with an explicit configuration.
func NewWithConfig[T tensor.Numeric](cfg Config) *CPUBackend[T] {
	return &CPUBackend[T]{cfg: cfg}
}

// Name returns the backend name.
func (cpu *CPUBackend[T]) Name() string {
	if !cpu.cfg.Unroll {
		return "CPU/generic"
	}
	return "CPU"
}

// Config returns the backend configuration.
func (cpu *CPUBackend[T]) Config() Config {
	return cpu.cfg
}

func mustMatch(op string, a, b tensor.Shaped) {
	if !tensor.ShapesMatch(a, b) {
		panic(fmt.Sprintf("%s: shape mismatch %v vs %v", op, a.Shape(), b.Shape()))
	}
}
