package serialization

import (
	"github.com/born-ml/fuse/internal/tensor"
)

// MetadataKey is the reserved header entry holding string metadata.
const MetadataKey = "__metadata__"

// headerAlignment is the multiple the JSON header is padded to.
const headerAlignment = 8

// Data type strings used in the header.
const (
	DTypeF16 = "F16"
	DTypeF32 = "F32"
	DTypeF64 = "F64"
	DTypeI32 = "I32"
	DTypeI64 = "I64"
)

// TensorMeta describes one tensor of a file.
type TensorMeta struct {
	Name        string   `json:"-"`
	DType       string   `json:"dtype"`
	Shape       []int    `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// Size returns the tensor's size in bytes.
func (m TensorMeta) Size() int64 {
	return m.DataOffsets[1] - m.DataOffsets[0]
}

// Header is the parsed JSON header of a file, tensors sorted by name.
type Header struct {
	Tensors  []TensorMeta
	Metadata map[string]string
}

// Tensor returns the metadata of the named tensor.
func (h Header) Tensor(name string) (TensorMeta, bool) {
	for _, m := range h.Tensors {
		if m.Name == name {
			return m, true
		}
	}
	return TensorMeta{}, false
}

// dtypeName converts a tensor.DataType to its header string.
func dtypeName(dt tensor.DataType) string {
	switch dt {
	case tensor.Float32:
		return DTypeF32
	case tensor.Float64:
		return DTypeF64
	case tensor.Int32:
		return DTypeI32
	case tensor.Int64:
		return DTypeI64
	default:
		return "unknown"
	}
}

// dtypeSize returns the element size of a header dtype string.
func dtypeSize(name string) (int, bool) {
	switch name {
	case DTypeF16:
		return 2, true
	case DTypeF32, DTypeI32:
		return 4, true
	case DTypeF64, DTypeI64:
		return 8, true
	default:
		return 0, false
	}
}

func isFloat(dt tensor.DataType) bool {
	return dt == tensor.Float32 || dt == tensor.Float64
}
