/*
PURPOSE:
  Writes the performance summary block to the console, as text or JSON.

REQUIREMENTS:
  User-specified:
  - One line per strategy after a "Performance Analysis Summary:" heading.
  - Name the saved chart file when there is one.

  Implementation-discovered:
  - A JSON form is handy for scripts that compare runs.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (plot, summary, run --plot)
  - Consumes: []model.Summary

ERROR HANDLING:
  - Returns write errors from the underlying io.Writer.

IMPLEMENTATION RULES:
  - Write to the given io.Writer, never straight to os.Stdout.

USAGE:
  output.WriteSummary(cmd.OutOrStdout(), summaries, "performance_analysis.png")

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/results/summary.go

MAINTENANCE:
  - Keep the text format stable; users grep it.
*/

package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/daryltucker/sirbench/internal/model"
	"github.com/daryltucker/sirbench/internal/results"
)

// WriteSummary prints the best-speedup block. imagePath is named in a
// trailing line unless it is empty.
func WriteSummary(w io.Writer, summaries []model.Summary, imagePath string) error {
	if _, err := fmt.Fprintln(w, "\nPerformance Analysis Summary:"); err != nil {
		return err
	}
	for _, s := range summaries {
		if _, err := fmt.Fprintln(w, results.FormatSummaryLine(s.Label, s.Best)); err != nil {
			return err
		}
	}
	if imagePath != "" {
		if _, err := fmt.Fprintf(w, "\nGraph saved as '%s'\n", imagePath); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummaryJSON prints the summaries as an indented JSON array.
func WriteSummaryJSON(w io.Writer, summaries []model.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summaries)
}
