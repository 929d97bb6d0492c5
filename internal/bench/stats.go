// Package bench times the fuse kernels against their generic paths and a
// reference implementation, and renders the comparison.
package bench

import (
	"fmt"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises a set of timing samples, all in microseconds.
type Stats struct {
	Samples int
	Mean    float64
	Median  float64
	StdDev  float64
	Min     float64
	Max     float64
}

// NewStats computes Stats over samples. The slice is sorted in place.
// An empty slice yields the zero Stats.
func NewStats(samples []float64) Stats {
	if len(samples) == 0 {
		return Stats{}
	}

	slices.Sort(samples)
	mean, std := stat.PopMeanStdDev(samples, nil)

	return Stats{
		Samples: len(samples),
		Mean:    mean,
		Median:  median(samples),
		StdDev:  std,
		Min:     floats.Min(samples),
		Max:     floats.Max(samples),
	}
}

// median expects sorted input and averages the two middle samples for even n.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func (s Stats) String() string {
	return fmt.Sprintf("mean=%.3fus median=%.3fus stddev=%.3fus min=%.3fus max=%.3fus (n=%d)",
		s.Mean, s.Median, s.StdDev, s.Min, s.Max, s.Samples)
}

// Run calls fn warmup times untimed, then iterations times, timing each call.
func Run(fn func(), iterations, warmup int) Stats {
	for range warmup {
		fn()
	}

	samples := make([]float64, iterations)
	for i := range samples {
		start := time.Now()
		fn()
		samples[i] = float64(time.Since(start).Nanoseconds()) / 1e3
	}

	return NewStats(samples)
}
