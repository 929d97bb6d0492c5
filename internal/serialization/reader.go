package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/x448/float16"

	"github.com/born-ml/fuse/internal/tensor"
)

// ReadHeader reads the size prefix and JSON header from r, leaving r at the
// start of the data section.
func ReadHeader(r io.Reader) (Header, error) {
	header, _, err := readHeader(r)
	return header, err
}

// readHeader also returns the number of bytes consumed from r.
func readHeader(r io.Reader) (Header, int64, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return Header{}, 0, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return Header{}, 0, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return Header{}, 0, fmt.Errorf("failed to read header: %w", err)
	}

	header, err := parseHeader(headerBytes)
	if err != nil {
		return Header{}, 0, err
	}
	return header, 8 + int64(headerSize), nil
}

func parseHeader(headerBytes []byte) (Header, error) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(headerBytes, &entries); err != nil {
		return Header{}, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	var header Header
	for name, raw := range entries {
		if name == MetadataKey {
			if err := json.Unmarshal(raw, &header.Metadata); err != nil {
				return Header{}, fmt.Errorf("failed to parse metadata: %w", err)
			}
			continue
		}

		var meta TensorMeta
		if err := json.Unmarshal(raw, &meta); err != nil {
			return Header{}, fmt.Errorf("failed to parse tensor %s: %w", name, err)
		}
		meta.Name = name
		header.Tensors = append(header.Tensors, meta)
	}
	sort.Slice(header.Tensors, func(i, j int) bool {
		return header.Tensors[i].Name < header.Tensors[j].Name
	})

	return header, nil
}

// ReadFileHeader reads only the header of the SafeTensors file at path and
// validates it against the file size.
func ReadFileHeader(path string) (Header, error) {
	//nolint:gosec // G304: loading from a user-chosen path is the point
	file, err := os.Open(path)
	if err != nil {
		return Header{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	info, err := file.Stat()
	if err != nil {
		return Header{}, fmt.Errorf("failed to stat file: %w", err)
	}

	header, consumed, err := readHeader(bufio.NewReader(file))
	if err != nil {
		return Header{}, err
	}

	if err := ValidateHeader(header, info.Size()-consumed); err != nil {
		return Header{}, err
	}
	return header, nil
}

// ReadFile reads every tensor of the SafeTensors file at path as T.
func ReadFile[T tensor.Numeric](path string) (map[string]*tensor.Tensor[T], map[string]string, error) {
	//nolint:gosec // G304: loading from a user-chosen path is the point
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return Read[T](bufio.NewReader(file))
}

// Read decodes every tensor from r as T.
//
// Stored dtypes must match T, except F16 which loads into float32 and float64.
func Read[T tensor.Numeric](r io.Reader) (map[string]*tensor.Tensor[T], map[string]string, error) {
	header, err := ReadHeader(r)
	if err != nil {
		return nil, nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read tensor data: %w", err)
	}

	if err := ValidateHeader(header, int64(len(data))); err != nil {
		return nil, nil, err
	}

	tensors := make(map[string]*tensor.Tensor[T], len(header.Tensors))
	for _, meta := range header.Tensors {
		t, err := decode[T](meta, data[meta.DataOffsets[0]:meta.DataOffsets[1]])
		if err != nil {
			return nil, nil, err
		}
		tensors[meta.Name] = t
	}

	return tensors, header.Metadata, nil
}

func decode[T tensor.Numeric](meta TensorMeta, raw []byte) (*tensor.Tensor[T], error) {
	dt := tensor.DataTypeOf[T]()
	t := tensor.Zeros[T](tensor.Shape(meta.Shape))

	switch {
	case meta.DType == dtypeName(dt):
		if _, err := binary.Decode(raw, binary.LittleEndian, t.Data()); err != nil {
			return nil, fmt.Errorf("failed to decode tensor %s: %w", meta.Name, err)
		}
	case meta.DType == DTypeF16 && isFloat(dt):
		out := t.Data()
		for i := range out {
			out[i] = T(float16.Frombits(binary.LittleEndian.Uint16(raw[2*i:])).Float32())
		}
	default:
		return nil, fmt.Errorf("%w: tensor %s is %s, want %s", ErrDTypeMismatch, meta.Name, meta.DType, dtypeName(dt))
	}

	return t, nil
}
