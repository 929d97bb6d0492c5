package nn_test

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"

	"github.com/born-ml/fuse/internal/backend/cpu"
	"github.com/born-ml/fuse/internal/nn"
	"github.com/born-ml/fuse/internal/tensor"
)

// Helper to check if values are approximately equal.
func floatEqual(a, b, epsilon float32) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < epsilon
}

func scenarioLayer(t *testing.T) *nn.Linear[float32] {
	t.Helper()
	layer := nn.NewLinear[float32](3, 2)

	w := layer.Weight().Tensor()
	w.Set(0.1, 0, 0)
	w.Set(0.2, 0, 1)
	w.Set(0.3, 0, 2)
	w.Set(0.4, 1, 0)
	w.Set(0.5, 1, 1)
	w.Set(0.6, 1, 2)

	b := layer.Bias().Tensor()
	b.Set(0.1, 0)
	b.Set(0.2, 1)
	return layer
}

// TestParameter tests Parameter creation and methods.
func TestParameter(t *testing.T) {
	data := tensor.FromValues[float32](tensor.Shape{3}, 1, 2, 3)
	param := nn.NewParameter("test_param", data)

	if param.Name() != "test_param" {
		t.Errorf("Name() = %s, want test_param", param.Name())
	}
	if param.Tensor() != data {
		t.Error("Tensor() should return the original tensor")
	}
}

func TestLinear_Scenario(t *testing.T) {
	layer := scenarioLayer(t)

	input := tensor.FromValues[float32](tensor.Shape{3}, 1, 2, 3)
	output := layer.Forward(input)

	require.Equal(t, tensor.Shape{2}, output.Shape())
	// 0.1*1 + 0.2*2 + 0.3*3 + 0.1
	if !floatEqual(output.At(0), 1.5, 1e-5) {
		t.Errorf("output[0] = %v, want 1.5", output.At(0))
	}
	if !floatEqual(output.At(1), 3.4, 1e-5) {
		t.Errorf("output[1] = %v, want 3.4", output.At(1))
	}
}

func TestLinear_MatchesMatMulPlusBias(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	backend := cpu.New[float64]()

	layer := nn.NewLinear[float64](7, 5)
	layer.InitXavier(rng)
	layer.Bias().Tensor().CopyFrom(tensor.RandUniform[float64](tensor.Shape{5}, -1, 1, rng))

	input := tensor.RandUniform[float64](tensor.Shape{7}, -1, 1, rng)

	column := tensor.FromValues(tensor.Shape{7, 1}, input.Data()...)
	product := backend.MatMul(layer.Weight().Tensor(), column)
	want := backend.Add(tensor.FromValues(tensor.Shape{5}, product.Data()...), layer.Bias().Tensor())

	got := layer.Forward(input)
	if diff := cmp.Diff(want.Data(), got.Data(), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Forward differs from W @ x + b (-want +got):\n%s", diff)
	}
}

func TestLinear_ZeroInitialized(t *testing.T) {
	layer := nn.NewLinear[int32](4, 3)

	assert.Equal(t, 4, layer.InFeatures())
	assert.Equal(t, 3, layer.OutFeatures())
	assert.Equal(t, tensor.Shape{3, 4}, layer.Weight().Tensor().Shape())
	assert.Equal(t, tensor.Shape{3}, layer.Bias().Tensor().Shape())

	out := layer.Forward(tensor.FromValues[int32](tensor.Shape{4}, 1, 2, 3, 4))
	assert.Equal(t, []int32{0, 0, 0}, out.Data())
}

func TestLinear_InputShapePanics(t *testing.T) {
	layer := nn.NewLinear[float32](3, 2)

	assert.PanicsWithValue(t, "Linear.Forward: expected input shape [3], got [4]", func() {
		layer.Forward(tensor.Zeros[float32](tensor.Shape{4}))
	})
	assert.Panics(t, func() { layer.Forward(tensor.Zeros[float32](tensor.Shape{1, 3})) })
	assert.Panics(t, func() {
		layer.ForwardInto(tensor.Zeros[float32](tensor.Shape{3}), tensor.Zeros[float32](tensor.Shape{3}))
	})
}

func TestNewLinearFrom(t *testing.T) {
	w := tensor.FromValues[float32](tensor.Shape{2, 3}, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6)
	b := tensor.FromValues[float32](tensor.Shape{2}, 0.1, 0.2)

	layer, err := nn.NewLinearFrom(w, b)
	require.NoError(t, err)
	assert.Equal(t, 3, layer.InFeatures())
	assert.Equal(t, 2, layer.OutFeatures())

	// The layer owns copies.
	w.Set(100, 0, 0)
	assert.Equal(t, float32(0.1), layer.Weight().Tensor().At(0, 0))

	_, err = nn.NewLinearFrom(w, tensor.Zeros[float32](tensor.Shape{3}))
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)

	_, err = nn.NewLinearFrom(tensor.Zeros[float32](tensor.Shape{6}), b)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestNewLinearFromFloat16(t *testing.T) {
	half := func(vs ...float32) []float16.Float16 {
		out := make([]float16.Float16, len(vs))
		for i, v := range vs {
			out[i] = float16.Fromfloat32(v)
		}
		return out
	}

	layer, err := nn.NewLinearFromFloat16(2, 2, half(1, 0.5, -2, 0.25), half(1, -1))
	require.NoError(t, err)

	out := layer.Forward(tensor.FromValues[float32](tensor.Shape{2}, 2, 4))
	// [1*2 + 0.5*4 + 1, -2*2 + 0.25*4 - 1]
	assert.Equal(t, []float32{5, -4}, out.Data())

	_, err = nn.NewLinearFromFloat16(2, 2, half(1, 2, 3), half(1, 2))
	assert.ErrorIs(t, err, tensor.ErrLength)
	_, err = nn.NewLinearFromFloat16(2, 2, half(1, 2, 3, 4), half(1))
	assert.ErrorIs(t, err, tensor.ErrLength)
}

func TestLinear_StateDict(t *testing.T) {
	src := scenarioLayer(t)
	dst := nn.NewLinear[float32](3, 2)

	require.NoError(t, dst.LoadStateDict(src.StateDict()))
	assert.Equal(t, src.Weight().Tensor().Data(), dst.Weight().Tensor().Data())
	assert.Equal(t, src.Bias().Tensor().Data(), dst.Bias().Tensor().Data())

	err := dst.LoadStateDict(map[string]*tensor.Tensor[float32]{"weight": src.Weight().Tensor()})
	assert.EqualError(t, err, "missing bias in state dict")

	wrong := nn.NewLinear[float32](2, 2)
	err = dst.LoadStateDict(wrong.StateDict())
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestXavierBounds(t *testing.T) {
	w := nn.Xavier[float64](4, 2, tensor.Shape{2, 4}, rand.New(rand.NewPCG(1, 1)))

	bound := 1.0 // sqrt(6 / 6)
	for _, v := range w.Data() {
		assert.GreaterOrEqual(t, v, -bound)
		assert.Less(t, v, bound)
	}
}

func TestSequential(t *testing.T) {
	backend := cpu.New[float32]()
	hidden := scenarioLayer(t)
	out := nn.NewLinear[float32](2, 1)
	out.Weight().Tensor().Set(1, 0, 0)
	out.Weight().Tensor().Set(-1, 0, 1)

	model := nn.NewSequential[float32](hidden, nn.NewReLU(backend))
	model.Add(out)

	assert.Equal(t, 3, model.Len())
	assert.Len(t, model.Parameters(), 4)
	assert.Same(t, hidden, model.Module(0))
	assert.Panics(t, func() { model.Module(3) })

	// hidden -> [1.5, 3.4], relu keeps it, out = 1.5 - 3.4
	y := model.Forward(tensor.FromValues[float32](tensor.Shape{3}, 1, 2, 3))
	require.Equal(t, tensor.Shape{1}, y.Shape())
	if !floatEqual(y.At(0), -1.9, 1e-5) {
		t.Errorf("Sequential output = %v, want -1.9", y.At(0))
	}
}

func TestReLUModule(t *testing.T) {
	relu := nn.NewReLU(cpu.New[float32]())

	y := relu.Forward(tensor.FromValues[float32](tensor.Shape{6}, -2, -1, 0, 1, 2, 3))
	assert.Equal(t, []float32{0, 0, 0, 1, 2, 3}, y.Data())
	assert.Nil(t, relu.Parameters())
}

func BenchmarkLinearForward(b *testing.B) {
	rng := rand.New(rand.NewPCG(0, 0))

	for _, dims := range [][2]int{{64, 32}, {256, 128}, {1024, 512}} {
		layer := nn.NewLinear[float32](dims[0], dims[1])
		layer.InitXavier(rng)
		input := tensor.RandUniform[float32](tensor.Shape{dims[0]}, -1, 1, rng)
		dst := tensor.Zeros[float32](tensor.Shape{dims[1]})

		b.Run(tensor.Shape{dims[0], dims[1]}.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				layer.ForwardInto(dst, input)
			}
		})
	}
}
