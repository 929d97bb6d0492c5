package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffset(t *testing.T) {
	shape := Shape{2, 3, 4}
	strides := shape.ComputeStrides()

	tests := []struct {
		index []int
		want  int
	}{
		{[]int{0, 0, 0}, 0},
		{[]int{0, 0, 3}, 3},
		{[]int{0, 1, 0}, 4},
		{[]int{1, 0, 0}, 12},
		{[]int{1, 2, 3}, 23},
	}

	for _, tt := range tests {
		got := Offset(shape, tt.index)
		assert.Equalf(t, tt.want, got, "Offset(%v)", tt.index)

		byStrides := 0
		for i, idx := range tt.index {
			byStrides += idx * strides[i]
		}
		assert.Equalf(t, byStrides, got, "Offset(%v) agrees with strides", tt.index)
	}
}

func TestOffsetPanics(t *testing.T) {
	assert.PanicsWithValue(t, "expected 2 indices, got 1", func() { Offset(Shape{2, 2}, []int{0}) })
	assert.PanicsWithValue(t, "index 2 out of bounds for dimension 1 (size 2)", func() { Offset(Shape{2, 2}, []int{0, 2}) })
}

func TestUnravelInvertsOffset(t *testing.T) {
	shape := Shape{3, 1, 5, 2}
	var idx []int
	for off := 0; off < shape.NumElements(); off++ {
		idx = Unravel(shape, off, idx)
		require.Equal(t, off, Offset(shape, idx), "round trip at %d (%v)", off, idx)
	}

	assert.Panics(t, func() { Unravel(shape, shape.NumElements(), nil) })
}

func TestNextIndexVisitsRowMajor(t *testing.T) {
	shape := Shape{2, 3}
	idx := make([]int, 2)

	var visited [][]int
	for {
		visited = append(visited, append([]int(nil), idx...))
		if !NextIndex(shape, idx) {
			break
		}
	}

	assert.Equal(t, [][]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}, visited)
	assert.Equal(t, []int{0, 0}, idx, "index wraps back to origin")
}

func TestCheckShapes(t *testing.T) {
	a := Zeros[float32](Shape{2, 3})

	assert.NoError(t, CheckShapes("add", a, Zeros[float32](Shape{2, 3})))

	err := CheckShapes("add", a, Zeros[float32](Shape{3, 2}))
	require.ErrorIs(t, err, ErrShapeMismatch)
	assert.Equal(t, "add: shape mismatch: [2 3] vs [3 2]", err.Error())
}

func TestCheckMatMul(t *testing.T) {
	assert.NoError(t, CheckMatMul(Zeros[float32](Shape{2, 3}), Zeros[float32](Shape{3, 5})))
	assert.ErrorIs(t, CheckMatMul(Zeros[float32](Shape{2, 3}), Zeros[float32](Shape{2, 3})), ErrShapeMismatch)
	assert.ErrorIs(t, CheckMatMul(Zeros[float32](Shape{6}), Zeros[float32](Shape{6, 1})), ErrShapeMismatch)
}
