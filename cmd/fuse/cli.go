package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/born-ml/fuse/internal/envconfig"
	"github.com/born-ml/fuse/internal/logutil"
)

const version = "v0.1.0-dev"

func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// NewCLI builds the root command with every subcommand attached.
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "fuse",
		Short:         "Statically shaped tensors with fused expressions",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			slog.SetDefault(logutil.NewLogger(cmd.ErrOrStderr(), envconfig.LogLevel()))
		},
		Run: func(cmd *cobra.Command, args []string) {
			if v, _ := cmd.Flags().GetBool("version"); v {
				versionHandler(cmd, args)
				return
			}

			cmd.Print(cmd.UsageString())
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	demoCmd := newDemoCmd()
	benchCmd := newBenchCmd()
	inspectCmd := newInspectCmd()
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run:   versionHandler,
	}

	envVars := envconfig.AsMap()
	appendEnvDocs(demoCmd, []envconfig.EnvVar{envVars["FUSE_DEBUG"], envVars["FUSE_NO_UNROLL"]})
	appendEnvDocs(benchCmd, []envconfig.EnvVar{
		envVars["FUSE_DEBUG"],
		envVars["FUSE_BENCH_ITERATIONS"],
		envVars["FUSE_BENCH_WARMUP"],
		envVars["FUSE_SEED"],
	})

	rootCmd.AddCommand(demoCmd, benchCmd, inspectCmd, versionCmd)

	return rootCmd
}

func versionHandler(cmd *cobra.Command, _ []string) {
	fmt.Fprintf(cmd.OutOrStdout(), "fuse version %s\n", version)
}
