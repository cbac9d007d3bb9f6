/*
PURPOSE:
  Defines the 'plot' subcommand.
  Loads a results table, renders the 2x2 performance figure and prints
  the best-speedup summary.

REQUIREMENTS:
  User-specified:
  - Load -> best rows -> chart -> summary, in that order.
  - Any failure aborts before the image is written.

  Implementation-discovered:
  - `run --plot` shares the render+summary step.

ARCHITECTURE INTEGRATION:
  - Calls: internal/results, internal/chart, internal/output

ERROR HANDLING:
  - Returns ParseError / ErrEmptyTable / chart errors unchanged (wrapped).

IMPLEMENTATION RULES:
  - Summary goes to cmd.OutOrStdout(), logs to stderr.

USAGE:
  sirbench plot results.csv -o analysis.svg

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/chart/chart.go
  - internal/output/summary.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/daryltucker/sirbench/internal/chart"
	"github.com/daryltucker/sirbench/internal/config"
	"github.com/daryltucker/sirbench/internal/model"
	"github.com/daryltucker/sirbench/internal/output"
	"github.com/daryltucker/sirbench/internal/results"
)

var (
	imageOverride string
	dpiOverride   int
)

var plotCmd = &cobra.Command{
	Use:   "plot [results.csv]",
	Short: "Render performance charts from a results file",
	Long: `Reads a results CSV (default: <output_dir>/<output_file> from config) and
renders speedup, efficiency, execution time and best-speedup charts into one
image. The format follows the file extension: png, jpg, tiff, svg or pdf.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if dpiOverride > 0 {
			cfg.Chart.DPI = dpiOverride
		}
		imagePath := cfg.Chart.File
		if imageOverride != "" {
			imagePath = imageOverride
		}

		table, err := results.LoadFile(resultsPath(cfg, args))
		if err != nil {
			return err
		}
		return renderAndSummarize(cmd, cfg, table, imagePath)
	},
}

func resultsPath(cfg *config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return filepath.Join(cfg.OutputDir, cfg.OutputFile)
}

func renderAndSummarize(cmd *cobra.Command, cfg *config.Config, table model.ResultsTable, imagePath string) error {
	summaries, err := results.Summarize(table)
	if err != nil {
		return err
	}

	if err := chart.Render(table, summaries, imagePath, chart.OptionsFromConfig(cfg.Chart)); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	output.Logger.Debug("Chart rendered", "path", imagePath, "rows", len(table))

	return output.WriteSummary(cmd.OutOrStdout(), summaries, imagePath)
}

func init() {
	rootCmd.AddCommand(plotCmd)

	plotCmd.Flags().StringVarP(&imageOverride, "output", "o", "", "Image file to write (default performance_analysis.png)")
	plotCmd.Flags().IntVar(&dpiOverride, "dpi", 0, "Raster resolution (overrides config)")
}
