package main

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/spf13/cobra"

	"github.com/born-ml/fuse/internal/bench"
	"github.com/born-ml/fuse/internal/envconfig"
)

func newBenchCmd() *cobra.Command {
	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Time the kernels against their generic paths and gonum",
		Args:  cobra.NoArgs,
		RunE:  BenchHandler,
	}

	benchCmd.Flags().Uint("iterations", envconfig.BenchIterations(), "Timed calls per benchmark")
	benchCmd.Flags().Uint("warmup", envconfig.BenchWarmup(), "Untimed warmup calls per benchmark")
	benchCmd.Flags().Uint64("seed", envconfig.Seed(), "Seed for the random operands")
	benchCmd.Flags().String("only", "", "Only run benchmarks whose name contains this text (e.g. matmul)")

	return benchCmd
}

// BenchHandler runs the benchmark suite and prints the comparison table.
func BenchHandler(cmd *cobra.Command, _ []string) error {
	iterations, err := cmd.Flags().GetUint("iterations")
	if err != nil {
		return err
	}
	warmup, err := cmd.Flags().GetUint("warmup")
	if err != nil {
		return err
	}
	seed, err := cmd.Flags().GetUint64("seed")
	if err != nil {
		return err
	}
	only, err := cmd.Flags().GetString("only")
	if err != nil {
		return err
	}
	if iterations > math.MaxInt || warmup > math.MaxInt {
		return fmt.Errorf("--iterations and --warmup must be at most %d", math.MaxInt)
	}

	results, err := bench.RunSuite(cmd.Context(), bench.Config{
		Iterations: int(iterations),
		Warmup:     int(warmup),
		Seed:       seed,
		Only:       only,
		Logger:     slog.Default(),
	})
	if err != nil {
		return err
	}

	return bench.Report(cmd.OutOrStdout(), results)
}
