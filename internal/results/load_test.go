package results

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/sirbench/internal/model"
)

const header = "Threads,ExecutorTime,ExecutorSpeedup,ExecutorEfficiency,ForkJoinTime,ForkJoinSpeedup,ForkJoinEfficiency\n"

const scenarioCSV = header +
	"1,1000.00,1.00,100.0,1000.00,1.00,100.0\n" +
	"2,526.32,1.90,95.0,512.82,1.95,97.5\n" +
	"4,285.71,3.50,87.0,263.16,3.80,95.0\n"

func TestLoadTable(t *testing.T) {
	table, err := LoadTable(strings.NewReader(scenarioCSV))
	require.NoError(t, err)
	require.Len(t, table, 3)

	assert.Equal(t, model.ResultRow{
		Threads:            2,
		ExecutorTime:       526.32,
		ExecutorSpeedup:    1.9,
		ExecutorEfficiency: 95,
		ForkJoinTime:       512.82,
		ForkJoinSpeedup:    1.95,
		ForkJoinEfficiency: 97.5,
	}, table[1])
	assert.Equal(t, []int{1, 2, 4}, []int{table[0].Threads, table[1].Threads, table[2].Threads})
}

func TestLoadTableReorderedAndExtraColumns(t *testing.T) {
	src := "Note, ForkJoinEfficiency, ForkJoinSpeedup, ForkJoinTime, Threads, ExecutorEfficiency, ExecutorSpeedup, ExecutorTime\n" +
		"warm, 97.5, 1.95, 512.82, 2, 95.0, 1.90, 526.32\n"

	table, err := LoadTable(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, 2, table[0].Threads)
	assert.Equal(t, 1.95, table[0].ForkJoinSpeedup)
	assert.Equal(t, 526.32, table[0].ExecutorTime)
}

func TestLoadTableStripsBOM(t *testing.T) {
	table, err := LoadTable(strings.NewReader("\ufeff" + scenarioCSV))
	require.NoError(t, err)
	assert.Len(t, table, 3)
}

func TestLoadTableMissingColumn(t *testing.T) {
	src := strings.Replace(scenarioCSV, ",ForkJoinSpeedup", ",Other", 1)

	_, err := LoadTable(strings.NewReader(src))
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr), "expected *ParseError, got %T", err)
	assert.Equal(t, "ForkJoinSpeedup", perr.Column)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestLoadTableMissingThreads(t *testing.T) {
	src := "Thread" + strings.TrimPrefix(scenarioCSV, "Threads")

	_, err := LoadTable(strings.NewReader(src))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, model.ThreadsHeader, perr.Column)
}

func TestLoadTableHeaderOnly(t *testing.T) {
	_, err := LoadTable(strings.NewReader(header))
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestLoadTableEmptySource(t *testing.T) {
	_, err := LoadTable(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestLoadTableBadValues(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		column string
		line   int
		target error
	}{
		{"non-numeric speedup", "2,526.32,fast,95.0,512.82,1.95,97.5", "ExecutorSpeedup", 3, strconv.ErrSyntax},
		{"fractional threads", "2.5,526.32,1.90,95.0,512.82,1.95,97.5", "Threads", 3, strconv.ErrSyntax},
		{"zero threads", "0,526.32,1.90,95.0,512.82,1.95,97.5", "Threads", 3, ErrInvalidThreads},
		{"short row", "2,526.32,1.90", "ExecutorEfficiency", 3, ErrMissingColumn},
		{"empty cell", "2,526.32,1.90,95.0,,1.95,97.5", "ForkJoinTime", 3, strconv.ErrSyntax},
		{"NaN speedup", "2,526.32,NaN,95.0,512.82,1.95,97.5", "ExecutorSpeedup", 3, ErrNonFinite},
		{"Inf efficiency", "2,526.32,1.90,95.0,512.82,1.95,Inf", "ForkJoinEfficiency", 3, ErrNonFinite},
		{"negative infinity time", "2,-infinity,1.90,95.0,512.82,1.95,97.5", "ExecutorTime", 3, ErrNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := header + "1,1000.00,1.00,100.0,1000.00,1.00,100.0\n" + tt.row + "\n"

			table, err := LoadTable(strings.NewReader(src))
			assert.Nil(t, table)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.column, perr.Column)
			assert.Equal(t, tt.line, perr.Line)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestLoadTableMalformedCSV(t *testing.T) {
	src := header + "1,\"1000.00,1.00,100.0,1000.00,1.00,100.0\n"

	_, err := LoadTable(strings.NewReader(src))
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.csv")
	require.NoError(t, os.WriteFile(path, []byte(scenarioCSV), 0644))

	table, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, table, 3)

	_, err = LoadFile(filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFileKeepsErrorKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, os.WriteFile(path, []byte(header), 0644))

	_, err := LoadFile(path)
	assert.ErrorIs(t, err, ErrEmptyTable)
	assert.Contains(t, err.Error(), path)
}
