/*
PURPOSE:
  Picks each strategy's best speedup and formats the console line for it.

REQUIREMENTS:
  User-specified:
  - Best value and its thread count per strategy.
  - "Best <label>: <x.xx>x speedup with <n> threads".

  Implementation-discovered:
  - First row wins ties, so the smallest listed thread count is reported.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (plot, summary), internal/chart tests
  - Consumes: internal/model.ResultsTable

ERROR HANDLING:
  - ErrEmptyTable for a table with no rows.

IMPLEMENTATION RULES:
  - Pure functions, no I/O.

USAGE:
  summaries, err := results.Summarize(table)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/output/summary.go

MAINTENANCE:
  - Update when model.Strategies changes.
*/

package results

import (
	"fmt"
	"math"

	"github.com/daryltucker/sirbench/internal/model"
)

// FindBest returns the maximum of column over table and the thread count of
// that row. The first row in table order wins ties. NaN only wins when every
// row is NaN.
func FindBest(table model.ResultsTable, column model.Column) (model.BestResult, error) {
	if len(table) == 0 {
		return model.BestResult{}, ErrEmptyTable
	}

	best := 0
	for i := 1; i < len(table); i++ {
		v, cur := column.Value(table[i]), column.Value(table[best])
		if v > cur || (math.IsNaN(cur) && !math.IsNaN(v)) {
			best = i
		}
	}
	return model.BestResult{
		Value:   column.Value(table[best]),
		Threads: table[best].Threads,
	}, nil
}

// FormatSummaryLine renders one strategy's best speedup for the console.
func FormatSummaryLine(label string, best model.BestResult) string {
	return fmt.Sprintf("Best %s: %.2fx speedup with %d threads", label, best.Value, best.Threads)
}

// Summarize finds the best speedup of every strategy, in model.Strategies order.
func Summarize(table model.ResultsTable) ([]model.Summary, error) {
	summaries := make([]model.Summary, 0, len(model.Strategies))
	for _, s := range model.Strategies {
		best, err := FindBest(table, s.Speedup())
		if err != nil {
			return nil, fmt.Errorf("best %s: %w", s.Speedup(), err)
		}
		summaries = append(summaries, model.Summary{
			Strategy: s,
			Label:    s.Label(),
			Best:     best,
		})
	}
	return summaries, nil
}
