package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/born-ml/fuse/internal/backend/cpu"
	"github.com/born-ml/fuse/internal/envconfig"
	"github.com/born-ml/fuse/internal/expr"
	"github.com/born-ml/fuse/internal/nn"
	"github.com/born-ml/fuse/internal/serialization"
	"github.com/born-ml/fuse/internal/tensor"
)

func newDemoCmd() *cobra.Command {
	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk through tensors, fused expressions and the kernels",
		Args:  cobra.NoArgs,
		RunE:  DemoHandler,
	}

	demoCmd.Flags().String("save", "", "Write the demo model to a SafeTensors file")
	demoCmd.Flags().Bool("half", false, "Store saved weights as float16")

	return demoCmd
}

// DemoHandler prints the result of every core operation on small inputs.
func DemoHandler(cmd *cobra.Command, _ []string) error {
	cfg := cpu.DefaultConfig()
	cfg.Unroll = !envconfig.NoUnroll(false)
	backend := cpu.NewWithConfig[float32](cfg)
	slog.Debug("demo backend", "name", backend.Name(), "unroll", cfg.Unroll)

	model, err := runDemo(cmd.OutOrStdout(), backend)
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("save")
	if path == "" {
		return nil
	}
	half, _ := cmd.Flags().GetBool("half")
	if err := nn.SaveFile(path, model, map[string]string{"producer": "fuse " + version}, serialization.Options{Half: half}); err != nil {
		return err
	}
	slog.Info("saved demo model", "path", path, "half", half)
	return nil
}

func runDemo(w io.Writer, backend *cpu.CPUBackend[float32]) (nn.Module[float32], error) {
	p := func(format string, args ...any) {
		fmt.Fprintf(w, format+"\n", args...)
	}

	p("== tensors (%s)", backend.Name())
	a := tensor.FromValues[float32](tensor.Shape{2, 3}, 1, 2, 3, 4, 5, 6)
	p("a = %v shape=%v rank=%d elements=%d", a.Data(), a.Shape(), a.Rank(), a.NumElements())
	p("a[1,2] = %v", a.At(1, 2))
	a.Set(60, 1, 2)
	p("after a[1,2] = 60: %v", a.Data())
	a.Set(6, 1, 2)

	p("\n== fused expression")
	b := tensor.Ones[float32](tensor.Shape{2, 3})
	c := tensor.Full[float32](tensor.Shape{2, 3}, 10)
	e := expr.Leaf(a).Add(expr.Scale(2, expr.Leaf(b))).Add(expr.Leaf(c))
	if err := expr.Validate(e, a.Shape()); err != nil {
		return nil, err
	}
	p("%s = %v", e, expr.Materialize(e, a.Shape()).Data())
	p("leaves=%d depth=%d", e.Leaves(), e.Depth())

	p("\n== shape checks")
	t := tensor.Zeros[float32](tensor.Shape{3, 2})
	p("shapes_match(%v, %v) = %v", a.Shape(), b.Shape(), tensor.ShapesMatch(a, b))
	p("shapes_match(%v, %v) = %v", a.Shape(), t.Shape(), tensor.ShapesMatch(a, t))
	if err := tensor.CheckShapes("add", a, t); err != nil {
		p("%v", err)
	}

	p("\n== matmul")
	m := tensor.FromValues[float32](tensor.Shape{3, 2}, 1, 2, 3, 4, 5, 6)
	p("%v @ %v = %v", a.Data(), m.Data(), backend.MatMul(a, m).Data())

	p("\n== relu")
	x := tensor.FromValues[float32](tensor.Shape{6}, -2, -1, 0, 1, 2, 3)
	p("relu(%v) = %v", x.Data(), backend.ReLU(x).Data())

	p("\n== linear")
	layer, err := nn.NewLinearFrom(
		tensor.FromValues[float32](tensor.Shape{2, 3}, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6),
		tensor.FromValues[float32](tensor.Shape{2}, 0.1, 0.2),
	)
	if err != nil {
		return nil, err
	}
	in := tensor.FromValues[float32](tensor.Shape{3}, 1, 2, 3)
	p("linear(%v) = %v", in.Data(), layer.Forward(in).Data())

	model := nn.NewSequential[float32](layer, nn.NewReLU[float32](backend))
	p("relu(linear(%v)) = %v", in.Data(), model.Forward(in).Data())

	return model, nil
}
