package nn

import (
	"math"
	"math/rand/v2"

	"github.com/born-ml/fuse/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// rng is supplied by the caller so initialization is reproducible.
func Xavier[T tensor.Numeric](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand) *tensor.Tensor[T] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return tensor.RandUniform[T](shape, -bound, bound, rng)
}

// InitXavier fills the layer's weights with Xavier values and zeroes its bias.
func (l *Linear[T]) InitXavier(rng *rand.Rand) {
	w := Xavier[T](l.inFeatures, l.outFeatures, tensor.Shape{l.outFeatures, l.inFeatures}, rng)
	l.weight.Tensor().CopyFrom(w)
	l.bias.Tensor().Fill(0)
}
