/*
PURPOSE:
  High-level runner that orchestrates the benchmarking process.
  Baseline -> for each thread count: Executor, ForkJoin -> CSV/JSON.

REQUIREMENTS:
  User-specified:
  - Time a sequential baseline, then both strategies per thread count.
  - Speedup = baseline / time, efficiency = speedup / threads * 100.
  - Log results to CSV/JSON.

  Implementation-discovered:
  - Needs to report progress to CLI.
  - Returns the table so `run --plot` can chart it without re-reading the CSV.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/engine/strategy.go, internal/output, internal/config

ERROR HANDLING:
  - Any strategy error (only cancellation in practice) aborts the run.
  - Rows already written stay in the CSV.

IMPLEMENTATION RULES:
  - Thread counts run in ascending order.
  - One strategy at a time; they must not compete for cores.

USAGE:
  table, err := engine.Run(ctx, cfg)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/engine/strategy.go
  - internal/output/csv.go

MAINTENANCE:
  - Update if a third strategy is added (model.Strategies, CSV header).
*/

package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/daryltucker/sirbench/internal/config"
	"github.com/daryltucker/sirbench/internal/model"
	"github.com/daryltucker/sirbench/internal/output"
	"github.com/daryltucker/sirbench/internal/sim"
)

// Run executes the full benchmark suite.
func Run(ctx context.Context, cfg *config.Config) (model.ResultsTable, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Ensure output directory exists
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}

	// Setup Outputs
	csvPath := filepath.Join(cfg.OutputDir, cfg.OutputFile)
	csvWriter, err := output.NewCSVWriter(csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init CSV writer at %s: %w", csvPath, err)
	}
	defer csvWriter.Close()

	jsonPath := filepath.Join(cfg.OutputDir, cfg.JSONFile)
	jsonWriter, err := output.NewJSONWriter(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init JSON writer at %s: %w", jsonPath, err)
	}
	defer jsonWriter.Close()

	threadCounts := slices.Clone(cfg.ThreadCounts)
	slices.Sort(threadCounts)

	output.Logger.Info("Starting benchmark",
		"simulations", cfg.Simulations,
		"thread_counts", threadCounts,
		"fork_threshold", cfg.ForkThreshold,
	)

	// 1. Baseline
	output.Logger.Info("Running sequential baseline...")
	baseline, baseStats, err := timed(func() (sim.Stats, error) {
		return RunSequential(ctx, cfg.SIR, cfg.Simulations, cfg.Seed)
	})
	if err != nil {
		return nil, fmt.Errorf("sequential baseline: %w", err)
	}
	output.Logger.Info("Sequential baseline done",
		"time_ms", fmt.Sprintf("%.2f", baseline),
		"mean_days", fmt.Sprintf("%.2f", baseStats.MeanDuration()),
		"mean_peak", fmt.Sprintf("%.2f", baseStats.MeanPeak()),
	)

	// 2. Per thread count
	table := make(model.ResultsTable, 0, len(threadCounts))
	for _, threads := range threadCounts {
		output.Logger.Debug("Running ExecutorService", "threads", threads)
		execTime, _, err := timed(func() (sim.Stats, error) {
			return RunExecutor(ctx, cfg.SIR, cfg.Simulations, threads, cfg.Seed)
		})
		if err != nil {
			return table, fmt.Errorf("executor with %d threads: %w", threads, err)
		}

		output.Logger.Debug("Running ForkJoinPool", "threads", threads)
		fjTime, fjStats, err := timed(func() (sim.Stats, error) {
			return RunForkJoin(ctx, cfg.SIR, cfg.Simulations, threads, cfg.ForkThreshold, cfg.Seed)
		})
		if err != nil {
			return table, fmt.Errorf("fork-join with %d threads: %w", threads, err)
		}

		row := NewRow(threads, baseline, execTime, fjTime)
		table = append(table, row)

		output.Logger.Info("Thread count done",
			"threads", threads,
			"exec_ms", fmt.Sprintf("%.2f", row.ExecutorTime),
			"exec_speedup", fmt.Sprintf("%.2fx", row.ExecutorSpeedup),
			"exec_eff", fmt.Sprintf("%.1f%%", row.ExecutorEfficiency),
			"fj_ms", fmt.Sprintf("%.2f", row.ForkJoinTime),
			"fj_speedup", fmt.Sprintf("%.2fx", row.ForkJoinSpeedup),
		)

		if err := csvWriter.Write(row); err != nil {
			output.Logger.Error("Failed to write result to CSV", "error", err)
		}
		if err := jsonWriter.Write(model.Measurement{
			Timestamp:    time.Now(),
			Simulations:  cfg.Simulations,
			Row:          row,
			MeanDuration: fjStats.MeanDuration(),
			MeanPeak:     fjStats.MeanPeak(),
		}); err != nil {
			output.Logger.Error("Failed to write result to JSON", "error", err)
		}
	}

	output.Logger.Info("Results saved", "csv", csvPath, "json", jsonPath)
	return table, nil
}

// NewRow derives speedup and efficiency from raw timings in milliseconds.
func NewRow(threads int, baseline, execTime, fjTime float64) model.ResultRow {
	execSpeedup := baseline / execTime
	fjSpeedup := baseline / fjTime
	return model.ResultRow{
		Threads:            threads,
		ExecutorTime:       execTime,
		ExecutorSpeedup:    execSpeedup,
		ExecutorEfficiency: execSpeedup / float64(threads) * 100,
		ForkJoinTime:       fjTime,
		ForkJoinSpeedup:    fjSpeedup,
		ForkJoinEfficiency: fjSpeedup / float64(threads) * 100,
	}
}

// timed runs fn and returns its wall time in milliseconds.
func timed(fn func() (sim.Stats, error)) (float64, sim.Stats, error) {
	start := time.Now()
	stats, err := fn()
	elapsed := time.Since(start)
	return float64(elapsed) / float64(time.Millisecond), stats, err
}
