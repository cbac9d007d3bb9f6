/*
PURPOSE:
  Defines the 'run' subcommand.
  Executes the full benchmark suite and writes results.csv / results.jsonl.

REQUIREMENTS:
  User-specified:
  - Run the benchmarks.
  - Thread counts as positional arguments.
  - specific flags for overrides.

  Implementation-discovered:
  - Need to load config first.
  - Apply flag overrides to config.
  - Invalid positional thread counts fall back to the defaults with a warning.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Run(), optionally internal/chart.Render()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config load fails or engine run fails.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Override -> Engine.Run -> (Plot).

USAGE:
  sirbench run 1 2 4 8

SELF-HEALING INSTRUCTIONS:
  - Check flag names match Config struct fields generally.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"slices"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/daryltucker/sirbench/internal/config"
	"github.com/daryltucker/sirbench/internal/engine"
	"github.com/daryltucker/sirbench/internal/output"
)

var (
	outputOverride      string
	threadsOverride     []int
	simulationsOverride int
	thresholdOverride   int
	seedOverride        uint64
	plotAfterRun        bool
)

var runCmd = &cobra.Command{
	Use:   "run [threads...]",
	Short: "Run the benchmark suite",
	Long: `Executes the SIR benchmark suite.
The process follows a strict protocol:
1. Baseline: Runs every simulation on a single goroutine.
2. ExecutorService: A fixed pool of N workers, work split evenly up front.
3. ForkJoinPool: Recursive halving onto a pool of N workers.

Steps 2 and 3 repeat for each thread count. Results are saved to CSV and
JSON Lines in the output directory.`,
	Example: `  # Run with defaults (uses sirbench.yaml if present)
  sirbench run

  # Specific thread counts
  sirbench run 1 2 4 8

  # Smaller workload, results to ./bench, chart when done
  sirbench run --simulations 100000 -o ./bench --plot`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		// 2. Overrides
		applyRunOverrides(cmd.Flags(), cfg, args)

		// 3. Execution
		table, err := engine.Run(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		if !plotAfterRun {
			return nil
		}
		return renderAndSummarize(cmd, cfg, table, cfg.Chart.File)
	},
}

func applyRunOverrides(fs *pflag.FlagSet, cfg *config.Config, args []string) {
	if len(args) > 0 {
		cfg.ThreadCounts = parseThreadCounts(args)
	}
	if fs.Changed("threads") {
		cfg.ThreadCounts = threadsOverride
	}
	if fs.Changed("simulations") {
		cfg.Simulations = simulationsOverride
	}
	if fs.Changed("fork-threshold") {
		cfg.ForkThreshold = thresholdOverride
	}
	if fs.Changed("seed") {
		cfg.Seed = seedOverride
	}
	if outputOverride != "" {
		cfg.OutputDir = outputOverride
	}
}

// parseThreadCounts reads positional thread counts, sorted ascending.
// Any invalid value discards them all in favour of the defaults.
func parseThreadCounts(args []string) []int {
	counts := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 1 {
			output.Logger.Warn("Invalid thread count, using defaults", "arg", a, "defaults", config.DefaultThreadCounts)
			return slices.Clone(config.DefaultThreadCounts)
		}
		counts = append(counts, n)
	}
	slices.Sort(counts)
	return counts
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&outputOverride, "output-dir", "o", "", "Output directory for results (CSV/JSON)")
	runCmd.Flags().IntSliceVar(&threadsOverride, "threads", nil, "Comma-separated thread counts (overrides positional args)")
	runCmd.Flags().IntVarP(&simulationsOverride, "simulations", "n", 0, "Number of SIR simulations per measurement")
	runCmd.Flags().IntVar(&thresholdOverride, "fork-threshold", 0, "Largest piece of work ForkJoin runs without splitting")
	runCmd.Flags().Uint64Var(&seedOverride, "seed", 0, "Random seed")
	runCmd.Flags().BoolVar(&plotAfterRun, "plot", false, "Render the chart and print the summary when done")
}
