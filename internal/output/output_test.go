package output

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/sirbench/internal/model"
	"github.com/daryltucker/sirbench/internal/results"
)

func TestCSVWriterFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	w, err := NewCSVWriter(path)
	require.NoError(t, err)

	require.NoError(t, w.Write(model.ResultRow{
		Threads:            4,
		ExecutorTime:       285.714,
		ExecutorSpeedup:    3.5,
		ExecutorEfficiency: 87.46,
		ForkJoinTime:       263.158,
		ForkJoinSpeedup:    3.8,
		ForkJoinEfficiency: 95,
	}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"Threads,ExecutorTime,ExecutorSpeedup,ExecutorEfficiency,ForkJoinTime,ForkJoinSpeedup,ForkJoinEfficiency\n"+
			"4,285.71,3.50,87.5,263.16,3.80,95.0\n",
		string(data))
}

func TestCSVWriterRoundTripsThroughLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	for _, n := range []int{1, 2, 4} {
		require.NoError(t, w.Write(model.ResultRow{Threads: n, ExecutorSpeedup: float64(n) * 0.9}))
	}
	require.NoError(t, w.Close())

	table, err := results.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, table, 3)
	assert.Equal(t, 3.6, table[2].ExecutorSpeedup)
}

func TestJSONWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.jsonl")
	w, err := NewJSONWriter(path)
	require.NoError(t, err)

	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, w.Write(model.Measurement{Timestamp: ts, Simulations: 10, Row: model.ResultRow{Threads: 1}}))
	require.NoError(t, w.Write(model.Measurement{Timestamp: ts, Simulations: 10, Row: model.ResultRow{Threads: 2}}))
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var threads []int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m model.Measurement
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		assert.Equal(t, ts, m.Timestamp)
		threads = append(threads, m.Row.Threads)
	}
	assert.Equal(t, []int{1, 2}, threads)
}

func TestWriteSummary(t *testing.T) {
	summaries := []model.Summary{
		{Strategy: model.Executor, Label: "ExecutorService", Best: model.BestResult{Value: 3.5, Threads: 4}},
		{Strategy: model.ForkJoin, Label: "ForkJoinPool", Best: model.BestResult{Value: 3.8, Threads: 4}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, summaries, "performance_analysis.png"))
	assert.Equal(t, "\nPerformance Analysis Summary:\n"+
		"Best ExecutorService: 3.50x speedup with 4 threads\n"+
		"Best ForkJoinPool: 3.80x speedup with 4 threads\n"+
		"\nGraph saved as 'performance_analysis.png'\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteSummary(&buf, summaries, ""))
	assert.NotContains(t, buf.String(), "Graph saved")
}

func TestWriteSummaryJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummaryJSON(&buf, []model.Summary{
		{Strategy: model.ForkJoin, Label: "ForkJoinPool", Best: model.BestResult{Value: 3.8, Threads: 4}},
	}))
	assert.JSONEq(t, `[{"strategy":"ForkJoinPool","best":{"value":3.8,"threads":4}}]`, buf.String())
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, slog.LevelInfo)
	l.Debug("hidden")
	l.Info("shown", "k", "v")

	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.Contains(t, out, "msg=shown k=v")
}
