/*
PURPOSE:
  Defines the 'summary' subcommand.
  Prints the best speedup per strategy without drawing a chart.

REQUIREMENTS:
  User-specified:
  - Read an existing results file.

  Implementation-discovered:
  - --json for machine-readable output.

ARCHITECTURE INTEGRATION:
  - Calls: internal/results.LoadFile(), internal/results.Summarize()
  - Uses: internal/config, internal/output

ERROR HANDLING:
  - Load and parse errors are returned to cobra unchanged.

IMPLEMENTATION RULES:
  - Output goes to cmd.OutOrStdout().

USAGE:
  sirbench summary results/results.csv --json

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/cli/plot.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/sirbench/internal/config"
	"github.com/daryltucker/sirbench/internal/output"
	"github.com/daryltucker/sirbench/internal/results"
)

var summaryJSON bool

var summaryCmd = &cobra.Command{
	Use:   "summary [results.csv]",
	Short: "Print the best speedup of each strategy",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		table, err := results.LoadFile(resultsPath(cfg, args))
		if err != nil {
			return err
		}
		summaries, err := results.Summarize(table)
		if err != nil {
			return err
		}

		if summaryJSON {
			return output.WriteSummaryJSON(cmd.OutOrStdout(), summaries)
		}
		return output.WriteSummary(cmd.OutOrStdout(), summaries, "")
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "Print JSON instead of text")
}
