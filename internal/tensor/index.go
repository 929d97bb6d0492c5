package tensor

import "fmt"

// Offset maps a multi-dimensional index to its row-major linear offset.
//
// Axes are visited from the last (fastest-varying) to the first, accumulating
// index[axis]*stride where stride starts at 1 and grows by shape[axis].
// Panics if len(index) != len(shape) or any component is out of range.
func Offset(shape Shape, index []int) int {
	if len(index) != len(shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(shape), len(index)))
	}

	offset := 0
	stride := 1
	for axis := len(shape) - 1; axis >= 0; axis-- {
		idx := index[axis]
		if idx < 0 || idx >= shape[axis] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, axis, shape[axis]))
		}
		offset += idx * stride
		stride *= shape[axis]
	}
	return offset
}

// Unravel writes the multi-dimensional index of a linear offset into dst
// and returns it. dst is reallocated when it is too short.
func Unravel(shape Shape, offset int, dst []int) []int {
	if offset < 0 || offset >= shape.NumElements() {
		panic(fmt.Sprintf("offset %d out of bounds for shape %v", offset, shape))
	}
	if cap(dst) < len(shape) {
		dst = make([]int, len(shape))
	}
	dst = dst[:len(shape)]

	for axis := len(shape) - 1; axis >= 0; axis-- {
		dst[axis] = offset % shape[axis]
		offset /= shape[axis]
	}
	return dst
}

// NextIndex advances index to its row-major successor in place.
// Returns false once index wraps past the last element.
func NextIndex(shape Shape, index []int) bool {
	for axis := len(shape) - 1; axis >= 0; axis-- {
		index[axis]++
		if index[axis] < shape[axis] {
			return true
		}
		index[axis] = 0
	}
	return false
}
