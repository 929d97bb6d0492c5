package serialization

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fuse/internal/tensor"
)

func testTensors() map[string]*tensor.Tensor[float32] {
	return map[string]*tensor.Tensor[float32]{
		"weight": tensor.FromValues[float32](tensor.Shape{2, 3}, 0.5, -1, 2, 0.25, 8, -4),
		"bias":   tensor.FromValues[float32](tensor.Shape{2}, 1, -2),
	}
}

func TestWriteRead(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testTensors(), map[string]string{"format": "pt"}, Options{}))

	got, metadata, err := Read[float32](&buf)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"format": "pt"}, metadata)

	want := testTensors()
	require.Len(t, got, len(want))
	for name, w := range want {
		require.Contains(t, got, name)
		assert.True(t, got[name].Shape().Equal(w.Shape()), name)
		assert.Equal(t, w.Data(), got[name].Data(), name)
	}
}

func TestWriteLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testTensors(), nil, Options{}))

	raw := buf.Bytes()
	headerSize := binary.LittleEndian.Uint64(raw)
	assert.Zero(t, headerSize%headerAlignment)

	header, err := ReadHeader(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Nil(t, header.Metadata)
	require.Len(t, header.Tensors, 2)

	// Alphabetical: bias before weight.
	assert.Equal(t, TensorMeta{Name: "bias", DType: DTypeF32, Shape: []int{2}, DataOffsets: [2]int64{0, 8}}, header.Tensors[0])
	assert.Equal(t, TensorMeta{Name: "weight", DType: DTypeF32, Shape: []int{2, 3}, DataOffsets: [2]int64{8, 32}}, header.Tensors[1])
	assert.Len(t, raw, 8+int(headerSize)+32)
}

func TestHalf(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testTensors(), nil, Options{Half: true}))

	header, err := ReadHeader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	weight, ok := header.Tensor("weight")
	require.True(t, ok)
	assert.Equal(t, DTypeF16, weight.DType)
	assert.Equal(t, int64(12), weight.Size())

	// Every value is exactly representable in half precision.
	got, _, err := Read[float64](bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, -1, 2, 0.25, 8, -4}, got["weight"].Data())
	assert.Equal(t, []float64{1, -2}, got["bias"].Data())
}

func TestHalfRejectsIntegers(t *testing.T) {
	tensors := map[string]*tensor.Tensor[int32]{"ids": tensor.Arange[int32](0, 4)}
	err := Write(&bytes.Buffer{}, tensors, nil, Options{Half: true})
	assert.ErrorIs(t, err, ErrUnsupportedDType)
}

func TestReadDTypeMismatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testTensors(), nil, Options{}))

	_, _, err := Read[int64](&buf)
	assert.ErrorIs(t, err, ErrDTypeMismatch)
}

func TestReadTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testTensors(), nil, Options{}))

	raw := buf.Bytes()
	_, _, err := Read[float32](bytes.NewReader(raw[:len(raw)-4]))
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestWriteInvalidName(t *testing.T) {
	tensors := map[string]*tensor.Tensor[float32]{"../weight": tensor.Ones[float32](tensor.Shape{1})}
	err := Write(&bytes.Buffer{}, tensors, nil, Options{})
	assert.ErrorIs(t, err, ErrInvalidTensorName)
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layer.safetensors")
	require.NoError(t, WriteFile(path, testTensors(), map[string]string{"layer": "linear"}, Options{}))

	header, err := ReadFileHeader(path)
	require.NoError(t, err)
	assert.Equal(t, "linear", header.Metadata["layer"])
	assert.Len(t, header.Tensors, 2)

	got, _, err := ReadFile[float32](path)
	require.NoError(t, err)
	assert.Equal(t, testTensors()["weight"].Data(), got["weight"].Data())
}

func TestValidateTensorOffsets(t *testing.T) {
	tests := []struct {
		name    string
		tensors []TensorMeta
		size    int64
		wantErr error
	}{
		{
			name: "valid",
			tensors: []TensorMeta{
				{Name: "a", DataOffsets: [2]int64{0, 8}},
				{Name: "b", DataOffsets: [2]int64{8, 16}},
			},
			size: 16,
		},
		{
			name: "overlap",
			tensors: []TensorMeta{
				{Name: "a", DataOffsets: [2]int64{0, 12}},
				{Name: "b", DataOffsets: [2]int64{8, 16}},
			},
			size:    16,
			wantErr: ErrOffsetOverlap,
		},
		{
			name:    "out of bounds",
			tensors: []TensorMeta{{Name: "a", DataOffsets: [2]int64{0, 20}}},
			size:    16,
			wantErr: ErrOutOfBounds,
		},
		{
			name:    "negative",
			tensors: []TensorMeta{{Name: "a", DataOffsets: [2]int64{-4, 4}}},
			size:    16,
			wantErr: ErrNegativeOffset,
		},
		{
			name:    "reversed",
			tensors: []TensorMeta{{Name: "a", DataOffsets: [2]int64{8, 4}}},
			size:    16,
			wantErr: ErrNegativeOffset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTensorOffsets(tt.tensors, tt.size)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateTensorName(t *testing.T) {
	assert.NoError(t, ValidateTensorName("0.weight"))
	assert.ErrorIs(t, ValidateTensorName(MetadataKey), ErrInvalidTensorName)
	assert.ErrorIs(t, ValidateTensorName(""), ErrInvalidTensorName)
	assert.ErrorIs(t, ValidateTensorName("a/b"), ErrInvalidTensorName)
	assert.ErrorIs(t, ValidateTensorName("a\x00"), ErrInvalidTensorName)
	assert.ErrorIs(t, ValidateTensorName(string(make([]byte, MaxTensorNameLen+1))), ErrTensorNameTooLong)
}

func TestValidateHeaderSizeMismatch(t *testing.T) {
	h := Header{Tensors: []TensorMeta{{Name: "a", DType: DTypeF32, Shape: []int{3}, DataOffsets: [2]int64{0, 8}}}}
	assert.ErrorIs(t, ValidateHeader(h, 8), ErrSizeMismatch)

	h.Tensors[0].DType = "BF16"
	assert.ErrorIs(t, ValidateHeader(h, 8), ErrUnsupportedDType)
}

func TestValidateHeaderOverflowingShape(t *testing.T) {
	// The element count wraps to 0 if multiplied unchecked.
	h := Header{Tensors: []TensorMeta{{Name: "w", DType: DTypeF32, Shape: []int{math.MaxInt/2 + 1, 2}}}}
	assert.ErrorIs(t, ValidateHeader(h, 0), tensor.ErrInvalidShape)

	// Fits in int elements but not in int64 bytes.
	h.Tensors[0].Shape = []int{math.MaxInt/4 + 1}
	assert.ErrorIs(t, ValidateHeader(h, 0), ErrSizeMismatch)
}

func TestReadOverflowingShape(t *testing.T) {
	headerJSON := fmt.Sprintf(`{"w":{"dtype":"F32","shape":[%d,2],"data_offsets":[0,0]}}`, math.MaxInt/2+1)
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(len(headerJSON))))
	buf.WriteString(headerJSON)

	_, _, err := Read[float32](&buf)
	assert.ErrorIs(t, err, tensor.ErrInvalidShape)
}

func TestWriteReservedName(t *testing.T) {
	tensors := map[string]*tensor.Tensor[float32]{MetadataKey: tensor.Ones[float32](tensor.Shape{1})}
	err := Write(&bytes.Buffer{}, tensors, map[string]string{"format": "pt"}, Options{})
	assert.ErrorIs(t, err, ErrInvalidTensorName)
}
