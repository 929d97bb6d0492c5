package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/fuse/internal/backend/cpu"
	"github.com/born-ml/fuse/internal/expr"
	"github.com/born-ml/fuse/internal/nn"
	"github.com/born-ml/fuse/internal/tensor"
)

// Framework names used by the suite.
const (
	Generic = "fuse/generic"
	Eager   = "fuse/eager"
	Gonum   = "gonum"
)

// ErrNoCases is returned when the Only filter matches nothing.
var ErrNoCases = errors.New("bench: no benchmark matches filter")

// Config controls a suite run.
type Config struct {
	Iterations int
	Warmup     int
	Seed       uint64
	// Only keeps the cases whose operation name contains this substring.
	Only   string
	Logger *slog.Logger
}

// Case is one timed operation. Its operands are built once, outside Fn.
type Case struct {
	Operation string
	Framework string
	Fn        func()
}

// Default sweeps.
var (
	MatMulSizes = []int{4, 32, 128}
	ReLUSizes   = []int{16, 1024, 4096}
	LinearSizes = [][2]int{{64, 32}, {256, 128}, {1024, 512}}
	AddSizes    = []int{16, 1024}
	ExprSize    = 1024
)

// Suite builds every case with operands drawn from a generator seeded by
// cfg.Seed, filtered by cfg.Only.
func Suite(cfg Config) []Case {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	fast := cpu.New[float32]()
	generic := cpu.NewWithConfig[float32](cpu.Config{Unroll: false})

	var cases []Case
	add := func(c ...Case) {
		for _, cc := range c {
			if cfg.Only == "" || strings.Contains(cc.Operation, cfg.Only) {
				cases = append(cases, cc)
			}
		}
	}

	for _, n := range MatMulSizes {
		add(matmulCases(n, rng, fast, generic)...)
	}
	for _, n := range ReLUSizes {
		add(reluCases(n, rng, fast, generic)...)
	}
	for _, s := range LinearSizes {
		add(linearCases(s[0], s[1], rng)...)
	}
	for _, n := range AddSizes {
		add(addCases(n, rng, fast)...)
	}
	add(exprCases(ExprSize, rng, fast)...)

	return cases
}

// RunSuite times every case of Suite(cfg) in order. It stops early when ctx
// is cancelled and returns the results gathered so far.
func RunSuite(ctx context.Context, cfg Config) ([]Result, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cases := Suite(cfg)
	if len(cases) == 0 {
		return nil, fmt.Errorf("%w %q", ErrNoCases, cfg.Only)
	}

	logger.Info("running benchmarks", "cases", len(cases), "iterations", cfg.Iterations, "warmup", cfg.Warmup, "seed", cfg.Seed)

	results := make([]Result, 0, len(cases))
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		stats := Run(c.Fn, cfg.Iterations, cfg.Warmup)
		logger.Debug("benchmark done", "operation", c.Operation, "framework", c.Framework, "mean_us", stats.Mean)
		results = append(results, Result{Operation: c.Operation, Framework: c.Framework, Stats: stats})
	}
	return results, nil
}

func matmulCases(n int, rng *rand.Rand, fast, generic *cpu.CPUBackend[float32]) []Case {
	op := fmt.Sprintf("matmul %dx%d", n, n)
	shape := tensor.Shape{n, n}
	a := tensor.RandUniform[float32](shape, -1, 1, rng)
	b := tensor.RandUniform[float32](shape, -1, 1, rng)
	dst := tensor.Zeros[float32](shape)
	dstGeneric := tensor.Zeros[float32](shape)

	ad := mat.NewDense(n, n, toFloat64(a.Data()))
	bd := mat.NewDense(n, n, toFloat64(b.Data()))
	var cd mat.Dense
	cd.Mul(ad, bd)

	return []Case{
		{op, Baseline, func() { fast.MatMulInto(dst, a, b) }},
		{op, Generic, func() { generic.MatMulInto(dstGeneric, a, b) }},
		{op, Gonum, func() { cd.Mul(ad, bd) }},
	}
}

func reluCases(n int, rng *rand.Rand, fast, generic *cpu.CPUBackend[float32]) []Case {
	op := fmt.Sprintf("relu %d", n)
	x := tensor.RandUniform[float32](tensor.Shape{n}, -1, 1, rng)
	dst := tensor.Zeros[float32](tensor.Shape{n})
	dstGeneric := tensor.Zeros[float32](tensor.Shape{n})

	return []Case{
		{op, Baseline, func() { fast.ReLUInto(dst, x) }},
		{op, Generic, func() { generic.ReLUInto(dstGeneric, x) }},
	}
}

func linearCases(in, out int, rng *rand.Rand) []Case {
	op := fmt.Sprintf("linear %d->%d", in, out)
	layer := nn.NewLinear[float32](in, out)
	layer.InitXavier(rng)
	x := tensor.RandUniform[float32](tensor.Shape{in}, -1, 1, rng)
	dst := tensor.Zeros[float32](tensor.Shape{out})

	w := mat.NewDense(out, in, toFloat64(layer.Weight().Tensor().Data()))
	bias := mat.NewVecDense(out, toFloat64(layer.Bias().Tensor().Data()))
	xv := mat.NewVecDense(in, toFloat64(x.Data()))
	yv := mat.NewVecDense(out, nil)

	return []Case{
		{op, Baseline, func() { layer.ForwardInto(dst, x) }},
		{op, Gonum, func() {
			yv.MulVec(w, xv)
			yv.AddVec(yv, bias)
		}},
	}
}

func addCases(n int, rng *rand.Rand, fast *cpu.CPUBackend[float32]) []Case {
	op := fmt.Sprintf("add %d", n)
	a := tensor.RandUniform[float32](tensor.Shape{n}, -1, 1, rng)
	b := tensor.RandUniform[float32](tensor.Shape{n}, -1, 1, rng)
	dst := tensor.Zeros[float32](tensor.Shape{n})

	a64, b64 := toFloat64(a.Data()), toFloat64(b.Data())
	dst64 := make([]float64, n)

	return []Case{
		{op, Baseline, func() { fast.AddInto(dst, a, b) }},
		{op, Gonum, func() { floats.AddTo(dst64, a64, b64) }},
	}
}

// exprCases compares the fused a + 2*b + c against evaluating it one kernel
// at a time with an intermediate tensor per step.
func exprCases(n int, rng *rand.Rand, fast *cpu.CPUBackend[float32]) []Case {
	op := fmt.Sprintf("expr a+2b+c %d", n)
	shape := tensor.Shape{n}
	a := tensor.RandUniform[float32](shape, -1, 1, rng)
	b := tensor.RandUniform[float32](shape, -1, 1, rng)
	c := tensor.RandUniform[float32](shape, -1, 1, rng)
	dst := tensor.Zeros[float32](shape)

	e := expr.Leaf(a).Add(expr.Scale(2, expr.Leaf(b))).Add(expr.Leaf(c))

	return []Case{
		{op, Baseline, func() { expr.MaterializeInto(e, dst) }},
		{op, Eager, func() { _ = fast.Add(fast.Add(a, fast.MulScalar(b, 2)), c) }},
	}
}

func toFloat64(src []float32) []float64 {
	dst := make([]float64, len(src))
	for i, v := range src {
		dst[i] = float64(v)
	}
	return dst
}
