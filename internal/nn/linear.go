package nn

import (
	"fmt"

	"github.com/x448/float16"

	"github.com/born-ml/fuse/internal/tensor"
)

// Linear implements a fully connected (dense) layer over one input vector.
//
// Performs the transformation: y[i] = b[i] + sum_j x[j] * W[i, j]
// where:
//   - x is the input tensor with shape [in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output tensor with shape [out_features]
//
// Example:
//
//	layer := nn.NewLinear[float32](3, 2)
//	layer.Weight().Tensor().Set(0.5, 0, 1)
//	output := layer.Forward(input) // shape: [2]
type Linear[T tensor.Numeric] struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter[T] // [out_features, in_features]
	bias        *Parameter[T] // [out_features]
}

// NewLinear creates a Linear layer with zero weights and bias.
func NewLinear[T tensor.Numeric](inFeatures, outFeatures int) *Linear[T] {
	return newLinear(
		tensor.Zeros[T](tensor.Shape{outFeatures, inFeatures}),
		tensor.Zeros[T](tensor.Shape{outFeatures}),
	)
}

// NewLinearFrom creates a Linear layer holding copies of weight and bias.
// weight must be [out, in] and bias [out].
func NewLinearFrom[T tensor.Numeric](weight, bias *tensor.Tensor[T]) (*Linear[T], error) {
	if weight.Rank() != 2 {
		return nil, fmt.Errorf("linear: %w: weight must be 2D, got %v", tensor.ErrShapeMismatch, weight.Shape())
	}
	if err := tensor.CheckShapes("linear: bias", bias, tensor.Shape{weight.Dim(0)}); err != nil {
		return nil, err
	}
	return newLinear(weight.Clone(), bias.Clone()), nil
}

// NewLinearFromFloat16 creates a float32 Linear layer from half-precision
// parameters laid out row-major as [out, in] and [out].
func NewLinearFromFloat16(inFeatures, outFeatures int, weight, bias []float16.Float16) (*Linear[float32], error) {
	if len(weight) != inFeatures*outFeatures {
		return nil, fmt.Errorf("linear: %w: weight has %d values, want %d", tensor.ErrLength, len(weight), inFeatures*outFeatures)
	}
	if len(bias) != outFeatures {
		return nil, fmt.Errorf("linear: %w: bias has %d values, want %d", tensor.ErrLength, len(bias), outFeatures)
	}
	return newLinear(
		tensor.FromFloat16(tensor.Shape{outFeatures, inFeatures}, weight),
		tensor.FromFloat16(tensor.Shape{outFeatures}, bias),
	), nil
}

func newLinear[T tensor.Numeric](weight, bias *tensor.Tensor[T]) *Linear[T] {
	return &Linear[T]{
		inFeatures:  weight.Dim(1),
		outFeatures: weight.Dim(0),
		weight:      NewParameter("weight", weight),
		bias:        NewParameter("bias", bias),
	}
}

// Forward computes the output of the linear layer.
//
// Input shape: [in_features]
// Output shape: [out_features]
//
// Panics if the input shape does not match.
func (l *Linear[T]) Forward(input *tensor.Tensor[T]) *tensor.Tensor[T] {
	output := tensor.Zeros[T](tensor.Shape{l.outFeatures})
	l.ForwardInto(output, input)
	return output
}

// ForwardInto writes the layer output into dst, which must be [out_features]
// and must not alias input.
func (l *Linear[T]) ForwardInto(dst, input *tensor.Tensor[T]) {
	if input.Rank() != 1 || input.Dim(0) != l.inFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected input shape [%d], got %v", l.inFeatures, input.Shape()))
	}
	if dst.Rank() != 1 || dst.Dim(0) != l.outFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected output shape [%d], got %v", l.outFeatures, dst.Shape()))
	}

	x := input.Data()
	w := l.weight.Tensor().Data()
	b := l.bias.Tensor().Data()
	out := dst.Data()

	for i := 0; i < l.outFeatures; i++ {
		row := w[i*l.inFeatures : (i+1)*l.inFeatures]
		var sum T
		for j, v := range x {
			sum += v * row[j]
		}
		out[i] = sum + b[i]
	}
}

// Parameters returns [weight, bias].
func (l *Linear[T]) Parameters() []*Parameter[T] {
	return []*Parameter[T]{l.weight, l.bias}
}

// Weight returns the weight parameter. Its tensor may be modified in place.
func (l *Linear[T]) Weight() *Parameter[T] {
	return l.weight
}

// Bias returns the bias parameter. Its tensor may be modified in place.
func (l *Linear[T]) Bias() *Parameter[T] {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear[T]) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear[T]) OutFeatures() int {
	return l.outFeatures
}

// StateDict returns a map of parameter names to tensors.
func (l *Linear[T]) StateDict() map[string]*tensor.Tensor[T] {
	return map[string]*tensor.Tensor[T]{
		"weight": l.weight.Tensor(),
		"bias":   l.bias.Tensor(),
	}
}

// LoadStateDict copies parameters from a state dictionary.
// Shapes must match exactly; nothing is modified on error.
func (l *Linear[T]) LoadStateDict(stateDict map[string]*tensor.Tensor[T]) error {
	weight, ok := stateDict["weight"]
	if !ok {
		return fmt.Errorf("missing weight in state dict")
	}
	bias, ok := stateDict["bias"]
	if !ok {
		return fmt.Errorf("missing bias in state dict")
	}

	if err := tensor.CheckShapes("weight", weight, l.weight.Tensor()); err != nil {
		return err
	}
	if err := tensor.CheckShapes("bias", bias, l.bias.Tensor()); err != nil {
		return err
	}

	l.weight.Tensor().CopyFrom(weight)
	l.bias.Tensor().CopyFrom(bias)
	return nil
}
