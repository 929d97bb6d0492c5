package serialization

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/born-ml/fuse/internal/tensor"
)

// Options controls how tensors are written.
type Options struct {
	// Half stores floating point tensors as F16.
	Half bool
}

// WriteFile writes tensors to a new SafeTensors file at path.
func WriteFile[T tensor.Numeric](path string, tensors map[string]*tensor.Tensor[T], metadata map[string]string, opts Options) (err error) {
	//nolint:gosec // G304: saving to a user-chosen path is the point
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(file)
	if err := Write(bw, tensors, metadata, opts); err != nil {
		return err
	}
	return bw.Flush()
}

// Write encodes tensors in the SafeTensors format.
//
// Tensors are laid out in alphabetical order by name.
func Write[T tensor.Numeric](w io.Writer, tensors map[string]*tensor.Tensor[T], metadata map[string]string, opts Options) error {
	dt := tensor.DataTypeOf[T]()
	dtype := dtypeName(dt)
	elemSize := dt.Size()
	if opts.Half {
		if !isFloat(dt) {
			return fmt.Errorf("%w: F16 storage needs a floating point tensor, got %s", ErrUnsupportedDType, dt)
		}
		dtype, elemSize = DTypeF16, 2
	}

	names := make([]string, 0, len(tensors))
	for name := range tensors {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		names = append(names, name)
	}
	sort.Strings(names)

	header := make(map[string]any, len(names)+1)
	if len(metadata) > 0 {
		header[MetadataKey] = metadata
	}

	var offset int64
	for _, name := range names {
		t := tensors[name]
		size := int64(t.NumElements() * elemSize)
		header[name] = TensorMeta{
			DType:       dtype,
			Shape:       t.Shape(),
			DataOffsets: [2]int64{offset, offset + size},
		}
		offset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if pad := len(headerJSON) % headerAlignment; pad != 0 {
		headerJSON = append(headerJSON, bytes.Repeat([]byte{' '}, headerAlignment-pad)...)
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, name := range names {
		var data any = tensors[name].Data()
		if opts.Half {
			data = tensor.ToFloat16(tensors[name])
		}
		if err := binary.Write(w, binary.LittleEndian, data); err != nil {
			return fmt.Errorf("failed to write tensor %s: %w", name, err)
		}
	}

	return nil
}
