/*
PURPOSE:
  Defines the core data structures used throughout sirbench.
  These models represent one benchmark results table and the values derived from it.

REQUIREMENTS:
  User-specified:
  - One row per thread count: time, speedup and efficiency for both strategies.
  - Best speedup per strategy, paired with the thread count that produced it.

  Implementation-discovered:
  - Column access must be typed, not keyed by header strings.
  - Need JSON tags for the results.jsonl output and `summary --json`.

ARCHITECTURE INTEGRATION:
  - Used by: internal/results, internal/chart, internal/engine, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Times are milliseconds, efficiencies are percentages.

USAGE:
  v := model.ForkJoinSpeedup.Value(row)
  col := model.Executor.Speedup()

SELF-HEALING INSTRUCTIONS:
  - If a new column is added, extend Columns, Header() and Value() together.

RELATED FILES:
  - internal/results/load.go
  - internal/output/csv.go

MAINTENANCE:
  - Update when adding new metrics to capture.
*/

package model

import (
	"fmt"
	"time"
)

// ResultRow is the outcome of benchmarking both strategies at one thread count.
type ResultRow struct {
	Threads            int     `json:"threads"`
	ExecutorTime       float64 `json:"executor_time_ms"`
	ExecutorSpeedup    float64 `json:"executor_speedup"`
	ExecutorEfficiency float64 `json:"executor_efficiency"`
	ForkJoinTime       float64 `json:"forkjoin_time_ms"`
	ForkJoinSpeedup    float64 `json:"forkjoin_speedup"`
	ForkJoinEfficiency float64 `json:"forkjoin_efficiency"`
}

// ResultsTable is a loaded results file, in file order.
type ResultsTable []ResultRow

// BestResult is the maximum of one column and the thread count of its row.
type BestResult struct {
	Value   float64 `json:"value"`
	Threads int     `json:"threads"`
}

// Column selects one numeric column of a ResultRow.
type Column int

const (
	ExecutorTime Column = iota
	ExecutorSpeedup
	ExecutorEfficiency
	ForkJoinTime
	ForkJoinSpeedup
	ForkJoinEfficiency
)

// ThreadsHeader is the CSV header of the thread count column.
const ThreadsHeader = "Threads"

// Columns lists every numeric column in CSV order.
var Columns = []Column{
	ExecutorTime,
	ExecutorSpeedup,
	ExecutorEfficiency,
	ForkJoinTime,
	ForkJoinSpeedup,
	ForkJoinEfficiency,
}

// Header returns the CSV header name of the column.
func (c Column) Header() string {
	switch c {
	case ExecutorTime:
		return "ExecutorTime"
	case ExecutorSpeedup:
		return "ExecutorSpeedup"
	case ExecutorEfficiency:
		return "ExecutorEfficiency"
	case ForkJoinTime:
		return "ForkJoinTime"
	case ForkJoinSpeedup:
		return "ForkJoinSpeedup"
	case ForkJoinEfficiency:
		return "ForkJoinEfficiency"
	}
	return fmt.Sprintf("Column(%d)", int(c))
}

func (c Column) String() string {
	return c.Header()
}

// Value reads the column from r.
func (c Column) Value(r ResultRow) float64 {
	switch c {
	case ExecutorTime:
		return r.ExecutorTime
	case ExecutorSpeedup:
		return r.ExecutorSpeedup
	case ExecutorEfficiency:
		return r.ExecutorEfficiency
	case ForkJoinTime:
		return r.ForkJoinTime
	case ForkJoinSpeedup:
		return r.ForkJoinSpeedup
	case ForkJoinEfficiency:
		return r.ForkJoinEfficiency
	}
	panic(fmt.Sprintf("model: unknown column %d", int(c)))
}

// Set writes v into the column of r.
func (c Column) Set(r *ResultRow, v float64) {
	switch c {
	case ExecutorTime:
		r.ExecutorTime = v
	case ExecutorSpeedup:
		r.ExecutorSpeedup = v
	case ExecutorEfficiency:
		r.ExecutorEfficiency = v
	case ForkJoinTime:
		r.ForkJoinTime = v
	case ForkJoinSpeedup:
		r.ForkJoinSpeedup = v
	case ForkJoinEfficiency:
		r.ForkJoinEfficiency = v
	default:
		panic(fmt.Sprintf("model: unknown column %d", int(c)))
	}
}

// Strategy is one of the two benchmarked concurrency mechanisms.
type Strategy int

const (
	Executor Strategy = iota
	ForkJoin
)

// Strategies lists the strategies in report order.
var Strategies = []Strategy{Executor, ForkJoin}

// Label is the display name used in charts and summary lines.
func (s Strategy) Label() string {
	if s == ForkJoin {
		return "ForkJoinPool"
	}
	return "ExecutorService"
}

func (s Strategy) String() string {
	return s.Label()
}

func (s Strategy) Time() Column {
	if s == ForkJoin {
		return ForkJoinTime
	}
	return ExecutorTime
}

func (s Strategy) Speedup() Column {
	if s == ForkJoin {
		return ForkJoinSpeedup
	}
	return ExecutorSpeedup
}

func (s Strategy) Efficiency() Column {
	if s == ForkJoin {
		return ForkJoinEfficiency
	}
	return ExecutorEfficiency
}

// Summary is the best speedup found for one strategy.
type Summary struct {
	Strategy Strategy   `json:"-"`
	Label    string     `json:"strategy"`
	Best     BestResult `json:"best"`
}

// Measurement is one harness row plus run metadata, as written to results.jsonl.
type Measurement struct {
	Timestamp   time.Time `json:"timestamp"`
	Simulations int       `json:"simulations"`
	Row         ResultRow `json:"row"`

	// Averages over the fork-join run.
	MeanDuration float64 `json:"mean_duration_days"`
	MeanPeak     float64 `json:"mean_peak_infected"`
}
