/*
PURPOSE:
  Defines the root Cobra command for the sirbench CLI.
  Handles global flags and command initialization.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose an ExecuteContext() function for main.go so Ctrl-C
    cancels a long benchmark cleanly.
  - -v switches the shared logger to debug level before any subcommand runs.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/sirbench/main.go
  - Calls: Child commands (run, plot, summary)
  - Modifies: Global configuration state (temporarily, until passed down).

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Keep Run logic in subcommands, Root is usually empty or helps.

USAGE:
  Called by main.go.

SELF-HEALING INSTRUCTIONS:
  - If adding new global flags, add them to init().

RELATED FILES:
  - cmd/sirbench/main.go

MAINTENANCE:
  - Update when adding global configuration options.
*/

package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/daryltucker/sirbench/internal/output"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile string
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "sirbench",
		Short: "Benchmark and chart ExecutorService vs ForkJoinPool style parallelism",
		Long: `Runs a stochastic SIR epidemic workload under two concurrency strategies
and analyses the resulting speedup table. Use 'run --help' for benchmark options
and 'plot --help' for charting.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			output.SetLogger(output.NewLogger(cmd.ErrOrStderr(), level))
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext executes the root command with ctx available to subcommands.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./sirbench.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
