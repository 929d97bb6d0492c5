package nn

import (
	"fmt"
	"strings"

	"github.com/born-ml/fuse/internal/tensor"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input.
//
// Example:
//
//	model := nn.NewSequential[float32](
//	    nn.NewLinear[float32](64, 32),
//	    nn.NewReLU(cpu.New[float32]()),
//	    nn.NewLinear[float32](32, 10),
//	)
//
//	output := model.Forward(input)
type Sequential[T tensor.Numeric] struct {
	modules []Module[T]
}

// NewSequential creates a new Sequential container.
func NewSequential[T tensor.Numeric](modules ...Module[T]) *Sequential[T] {
	return &Sequential[T]{
		modules: modules,
	}
}

// Forward applies all modules in sequence.
func (s *Sequential[T]) Forward(input *tensor.Tensor[T]) *tensor.Tensor[T] {
	output := input

	for _, module := range s.modules {
		output = module.Forward(output)
	}

	return output
}

// Parameters returns all parameters from all modules, in order.
func (s *Sequential[T]) Parameters() []*Parameter[T] {
	var params []*Parameter[T]

	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}

	return params
}

// Add appends a module to the sequence.
func (s *Sequential[T]) Add(module Module[T]) {
	s.modules = append(s.modules, module)
}

// Len returns the number of modules in the sequence.
func (s *Sequential[T]) Len() int {
	return len(s.modules)
}

// Module returns the module at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential[T]) Module(index int) Module[T] {
	if index < 0 || index >= len(s.modules) {
		panic(fmt.Sprintf("Sequential.Module: index %d out of bounds (len %d)", index, len(s.modules)))
	}
	return s.modules[index]
}

// StateDict returns the tensors of every module, prefixed with the module
// index ("0.weight", "0.bias", "2.weight", ...).
func (s *Sequential[T]) StateDict() map[string]*tensor.Tensor[T] {
	stateDict := make(map[string]*tensor.Tensor[T])

	for i, module := range s.modules {
		for name, t := range module.StateDict() {
			stateDict[fmt.Sprintf("%d.%s", i, name)] = t
		}
	}

	return stateDict
}

// LoadStateDict loads index-prefixed tensors into each module.
// Modules without matching keys are left unchanged. Every module's tensors
// are checked before any is copied, so nothing is modified on error.
func (s *Sequential[T]) LoadStateDict(stateDict map[string]*tensor.Tensor[T]) error {
	subDicts := make([]map[string]*tensor.Tensor[T], len(s.modules))

	for i, module := range s.modules {
		prefix := fmt.Sprintf("%d.", i)
		moduleStateDict := make(map[string]*tensor.Tensor[T])

		for key, t := range stateDict {
			if name, ok := strings.CutPrefix(key, prefix); ok && name != "" {
				moduleStateDict[name] = t
			}
		}
		if len(moduleStateDict) == 0 {
			continue
		}

		for name, current := range module.StateDict() {
			t, ok := moduleStateDict[name]
			if !ok {
				return fmt.Errorf("failed to load module %d: missing %s in state dict", i, name)
			}
			if err := tensor.CheckShapes(name, t, current); err != nil {
				return fmt.Errorf("failed to load module %d: %w", i, err)
			}
		}
		subDicts[i] = moduleStateDict
	}

	for i, module := range s.modules {
		if subDicts[i] == nil {
			continue
		}
		if err := module.LoadStateDict(subDicts[i]); err != nil {
			return fmt.Errorf("failed to load module %d: %w", i, err)
		}
	}

	return nil
}
