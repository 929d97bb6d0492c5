package tensor

import "github.com/x448/float16"

// FromFloat16 widens half-precision values into a float32 tensor.
// Like FromValues, excess values are ignored and missing values stay zero.
func FromFloat16(shape Shape, values []float16.Float16) *Tensor[float32] {
	t := Zeros[float32](shape)
	n := min(len(values), len(t.data))
	for i := 0; i < n; i++ {
		t.data[i] = values[i].Float32()
	}
	return t
}

// FromFloat16Bits is FromFloat16 for raw IEEE 754 binary16 bit patterns.
func FromFloat16Bits(shape Shape, bits []uint16) *Tensor[float32] {
	t := Zeros[float32](shape)
	n := min(len(bits), len(t.data))
	for i := 0; i < n; i++ {
		t.data[i] = float16.Frombits(bits[i]).Float32()
	}
	return t
}

// ToFloat16 narrows every element of t to half precision, rounding to nearest even.
func ToFloat16[T Numeric](t *Tensor[T]) []float16.Float16 {
	out := make([]float16.Float16, len(t.data))
	for i, v := range t.data {
		out[i] = float16.Fromfloat32(float32(v))
	}
	return out
}
