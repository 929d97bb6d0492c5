package serialization

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/born-ml/fuse/internal/tensor"
)

// Validation limits for resource protection.
const (
	MaxHeaderSize    = 100 * 1024 * 1024 // 100MB
	MaxTensorCount   = 100_000
	MaxTensorNameLen = 4096
)

// ValidateTensorOffsets checks that tensor byte ranges are non-negative, lie
// within a data section of dataSize bytes and do not overlap.
func ValidateTensorOffsets(tensors []TensorMeta, dataSize int64) error {
	if len(tensors) > MaxTensorCount {
		return &ValidationError{
			Err:     ErrTooManyTensors,
			Details: fmt.Sprintf("got %d, max %d", len(tensors), MaxTensorCount),
		}
	}

	sorted := make([]TensorMeta, len(tensors))
	copy(sorted, tensors)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DataOffsets[0] < sorted[j].DataOffsets[0]
	})

	for i, t := range sorted {
		begin, end := t.DataOffsets[0], t.DataOffsets[1]
		if begin < 0 || end < begin {
			return &ValidationError{
				Err:     ErrNegativeOffset,
				Tensor:  t.Name,
				Details: fmt.Sprintf("data_offsets [%d, %d]", begin, end),
			}
		}

		if end > dataSize {
			return &ValidationError{
				Err:     ErrOutOfBounds,
				Tensor:  t.Name,
				Details: fmt.Sprintf("end %d > data_size %d", end, dataSize),
			}
		}

		if i < len(sorted)-1 {
			next := sorted[i+1]
			if end > next.DataOffsets[0] {
				return &ValidationError{
					Err:     ErrOffsetOverlap,
					Tensor:  t.Name,
					Tensor2: next.Name,
					Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
						begin, end, next.DataOffsets[0], next.DataOffsets[1]),
				}
			}
		}
	}

	return nil
}

// ValidateTensorName rejects empty, oversized, reserved and path-like tensor names.
func ValidateTensorName(name string) error {
	if name == "" {
		return &ValidationError{Err: ErrInvalidTensorName, Details: "empty name"}
	}

	if len(name) > MaxTensorNameLen {
		return &ValidationError{
			Err:     ErrTensorNameTooLong,
			Tensor:  name,
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxTensorNameLen),
		}
	}

	if name == MetadataKey {
		return &ValidationError{Err: ErrInvalidTensorName, Tensor: name, Details: "reserved for metadata"}
	}

	if strings.Contains(name, "..") {
		return &ValidationError{Err: ErrInvalidTensorName, Tensor: name, Details: "contains '..'"}
	}

	if strings.ContainsAny(name, "/\\") {
		return &ValidationError{Err: ErrInvalidTensorName, Tensor: name, Details: "contains path separator (/ or \\)"}
	}

	if strings.Contains(name, "\x00") {
		return &ValidationError{Err: ErrInvalidTensorName, Tensor: name, Details: "contains null byte"}
	}

	return nil
}

// ValidateHeader checks names, dtypes, shapes and byte ranges of every tensor
// against a data section of dataSize bytes.
func ValidateHeader(h Header, dataSize int64) error {
	if len(h.Tensors) > MaxTensorCount {
		return &ValidationError{
			Err:     ErrTooManyTensors,
			Details: fmt.Sprintf("got %d, max %d", len(h.Tensors), MaxTensorCount),
		}
	}

	for _, t := range h.Tensors {
		if err := ValidateTensorName(t.Name); err != nil {
			return err
		}

		elemSize, ok := dtypeSize(t.DType)
		if !ok {
			return &ValidationError{Err: ErrUnsupportedDType, Tensor: t.Name, Details: t.DType}
		}

		shape := tensor.Shape(t.Shape)
		if err := shape.Validate(); err != nil {
			return fmt.Errorf("tensor %q: %w", t.Name, err)
		}

		n := int64(shape.NumElements())
		if n > math.MaxInt64/int64(elemSize) {
			return &ValidationError{
				Err:     ErrSizeMismatch,
				Tensor:  t.Name,
				Details: fmt.Sprintf("%s %v byte size overflows int64", t.DType, shape),
			}
		}

		if want := n * int64(elemSize); t.Size() != want {
			return &ValidationError{
				Err:     ErrSizeMismatch,
				Tensor:  t.Name,
				Details: fmt.Sprintf("%s %v needs %d bytes, data_offsets span %d", t.DType, shape, want, t.Size()),
			}
		}
	}

	return ValidateTensorOffsets(h.Tensors, dataSize)
}
