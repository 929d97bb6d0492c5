package nn

import (
	"fmt"
	"sort"

	"github.com/born-ml/fuse/internal/serialization"
	"github.com/born-ml/fuse/internal/tensor"
)

// SaveFile writes the module's state dict to a SafeTensors file.
//
// Example:
//
//	err := nn.SaveFile("model.safetensors", model, map[string]string{"arch": "mlp"}, serialization.Options{})
func SaveFile[T tensor.Numeric](path string, m Module[T], metadata map[string]string, opts serialization.Options) error {
	if err := serialization.WriteFile(path, m.StateDict(), metadata, opts); err != nil {
		return fmt.Errorf("failed to save module: %w", err)
	}
	return nil
}

// LoadFile reads a SafeTensors file into the module and returns the file's
// metadata. Every tensor of the module must be present in the file, and the
// file must not hold tensors the module does not know.
func LoadFile[T tensor.Numeric](path string, m Module[T]) (map[string]string, error) {
	stateDict, metadata, err := serialization.ReadFile[T](path)
	if err != nil {
		return nil, fmt.Errorf("failed to load module: %w", err)
	}

	if err := checkKeys(m.StateDict(), stateDict); err != nil {
		return nil, err
	}
	if err := m.LoadStateDict(stateDict); err != nil {
		return nil, fmt.Errorf("failed to load module: %w", err)
	}
	return metadata, nil
}

func checkKeys[T tensor.Numeric](want, got map[string]*tensor.Tensor[T]) error {
	var missing, unexpected []string
	for name := range want {
		if _, ok := got[name]; !ok {
			missing = append(missing, name)
		}
	}
	for name := range got {
		if _, ok := want[name]; !ok {
			unexpected = append(unexpected, name)
		}
	}
	if len(missing) == 0 && len(unexpected) == 0 {
		return nil
	}

	sort.Strings(missing)
	sort.Strings(unexpected)
	return fmt.Errorf("state dict mismatch: missing %v, unexpected %v", missing, unexpected)
}
