package chart

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/daryltucker/sirbench/internal/model"
	"github.com/daryltucker/sirbench/internal/results"
)

func testTable() model.ResultsTable {
	return model.ResultsTable{
		{Threads: 4, ExecutorTime: 285.7, ExecutorSpeedup: 3.5, ExecutorEfficiency: 87, ForkJoinTime: 263.2, ForkJoinSpeedup: 3.8, ForkJoinEfficiency: 95},
		{Threads: 1, ExecutorTime: 1000, ExecutorSpeedup: 1.0, ExecutorEfficiency: 100, ForkJoinTime: 1000, ForkJoinSpeedup: 1.0, ForkJoinEfficiency: 100},
		{Threads: 2, ExecutorTime: 526.3, ExecutorSpeedup: 1.9, ExecutorEfficiency: 95, ForkJoinTime: 512.8, ForkJoinSpeedup: 1.95, ForkJoinEfficiency: 97.5},
	}
}

// smallOptions keeps raster output cheap in tests.
func smallOptions() Options {
	return Options{Title: "Test Figure", Width: 6 * vg.Inch, Height: 5 * vg.Inch, DPI: 40}
}

func testSummaries(t *testing.T) []model.Summary {
	s, err := results.Summarize(testTable())
	require.NoError(t, err)
	return s
}

func TestRenderPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "performance_analysis.png")

	require.NoError(t, Render(testTable(), testSummaries(t), path, smallOptions()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")), "not a PNG file")
}

func TestRenderVectorFormats(t *testing.T) {
	dir := t.TempDir()

	svg := filepath.Join(dir, "figure.svg")
	require.NoError(t, Render(testTable(), testSummaries(t), svg, smallOptions()))
	data, err := os.ReadFile(svg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	pdf := filepath.Join(dir, "figure.PDF")
	require.NoError(t, Render(testTable(), testSummaries(t), pdf, smallOptions()))
	data, err = os.ReadFile(pdf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figure.bmp")

	err := Render(testTable(), testSummaries(t), path, smallOptions())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.NoFileExists(t, path)
}

func TestRenderEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figure.png")

	err := Render(nil, nil, path, smallOptions())
	assert.ErrorIs(t, err, results.ErrEmptyTable)
	assert.NoFileExists(t, path)
}

func TestRenderRejectsNonFinite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figure.png")
	table := testTable()
	table[0].ExecutorSpeedup = math.Inf(1)

	err := Render(table, nil, path, smallOptions())
	assert.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestPlotsLayout(t *testing.T) {
	plots, err := Plots(testTable(), testSummaries(t))
	require.NoError(t, err)
	require.Len(t, plots, 2)
	require.Len(t, plots[0], 2)
	require.Len(t, plots[1], 2)

	assert.Equal(t, "Speedup vs Thread Count", plots[0][0].Title.Text)
	assert.Equal(t, "Efficiency vs Thread Count", plots[0][1].Title.Text)
	assert.Equal(t, "Execution Time vs Thread Count", plots[1][0].Title.Text)
	assert.Equal(t, "Best Performance Comparison", plots[1][1].Title.Text)

	eff := plots[0][1]
	assert.GreaterOrEqual(t, eff.Y.Max, 100.0, "efficiency axis must include the 100% line")
	assert.Equal(t, 1.0, eff.X.Min)
	assert.Equal(t, 4.0, eff.X.Max)

	best := plots[1][1]
	assert.Equal(t, 0.0, best.Y.Min)
	assert.InDelta(t, 3.8*1.25, best.Y.Max, 1e-9)
}

func TestBarLabel(t *testing.T) {
	assert.Equal(t, "3.8x\n(4 threads)", BarLabel(model.BestResult{Value: 3.8, Threads: 4}))
}

func TestOptionsFromConfigDefaults(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 15*vg.Inch, opts.Width)
	assert.Equal(t, 12*vg.Inch, opts.Height)
	assert.Equal(t, 300, opts.DPI)
}
