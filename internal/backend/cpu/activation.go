package cpu

import "github.com/born-ml/fuse/internal/tensor"

// ReLU applies max(x, 0) to every element and returns a tensor of the same shape.
// Tensors with at most SmallActivationSize elements take the unrolled path.
func (cpu *CPUBackend[T]) ReLU(x *tensor.Tensor[T]) *tensor.Tensor[T] {
	result := tensor.Zeros[T](x.Shape())
	cpu.relu(result.Data(), x.Data())
	return result
}

// ReLUInto writes ReLU(x) into dst. Shapes must match; dst may alias x.
func (cpu *CPUBackend[T]) ReLUInto(dst, x *tensor.Tensor[T]) {
	mustMatch("relu", dst, x)
	cpu.relu(dst.Data(), x.Data())
}

func (cpu *CPUBackend[T]) relu(dst, src []T) {
	if cpu.cfg.Unroll && len(src) <= SmallActivationSize {
		reluSmall(dst, src)
		return
	}
	reluGeneric(dst, src)
}

func relu[T tensor.Numeric](v T) T {
	if v > 0 {
		return v
	}
	return 0
}

func reluGeneric[T tensor.Numeric](dst, src []T) {
	dst = dst[:len(src)]
	for i, v := range src {
		dst[i] = relu(v)
	}
}

func reluSmall[T tensor.Numeric](dst, src []T) {
	switch len(src) {
	case 16:
		dst[15] = relu(src[15])
		fallthrough
	case 15:
		dst[14] = relu(src[14])
		fallthrough
	case 14:
		dst[13] = relu(src[13])
		fallthrough
	case 13:
		dst[12] = relu(src[12])
		fallthrough
	case 12:
		dst[11] = relu(src[11])
		fallthrough
	case 11:
		dst[10] = relu(src[10])
		fallthrough
	case 10:
		dst[9] = relu(src[9])
		fallthrough
	case 9:
		dst[8] = relu(src[8])
		fallthrough
	case 8:
		dst[7] = relu(src[7])
		fallthrough
	case 7:
		dst[6] = relu(src[6])
		fallthrough
	case 6:
		dst[5] = relu(src[5])
		fallthrough
	case 5:
		dst[4] = relu(src[4])
		fallthrough
	case 4:
		dst[3] = relu(src[3])
		fallthrough
	case 3:
		dst[2] = relu(src[2])
		fallthrough
	case 2:
		dst[1] = relu(src[1])
		fallthrough
	case 1:
		dst[0] = relu(src[0])
	}
}
