/*
PURPOSE:
  Loads a benchmark results CSV into a typed model.ResultsTable.

REQUIREMENTS:
  User-specified:
  - Header row with Threads plus the six timing/speedup/efficiency columns.
  - Fail on a missing column, a non-numeric cell, or zero data rows.

  Implementation-discovered:
  - strconv.ParseFloat accepts NaN and Inf; those cells are rejected too.
  - Columns are matched by name so reordered or extra columns still load.
  - Files written on Windows may carry a UTF-8 BOM on the first header.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (plot, summary)
  - Produces: internal/model.ResultsTable

ERROR HANDLING:
  - *ParseError for header and cell problems (wraps ErrMissingColumn,
    ErrInvalidThreads, ErrNonFinite or the strconv error).
  - ErrEmptyTable when no data rows exist.

IMPLEMENTATION RULES:
  - Use encoding/csv, same as internal/output/csv.go.
  - Never return a partial table together with an error.

USAGE:
  table, err := results.LoadFile("results.csv")

SELF-HEALING INSTRUCTIONS:
  - If the harness CSV format changes, update internal/output/csv.go header too.

RELATED FILES:
  - internal/model/types.go
  - internal/output/csv.go

MAINTENANCE:
  - Update when adding new columns to ResultRow.
*/

package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/daryltucker/sirbench/internal/model"
)

// LoadFile opens path and parses it with LoadTable.
func LoadFile(path string) (model.ResultsTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open results file: %w", err)
	}
	defer f.Close()

	table, err := LoadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// LoadTable parses a results CSV with a header row.
func LoadTable(r io.Reader) (model.ResultsTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	threadsIdx, colIdx, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	var table model.ResultsTable
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &ParseError{Line: csvErr.Line, Err: csvErr.Err}
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		line, _ := reader.FieldPos(0)

		row, err := parseRow(record, line, threadsIdx, colIdx)
		if err != nil {
			return nil, err
		}
		table = append(table, row)
	}

	if len(table) == 0 {
		return nil, ErrEmptyTable
	}
	return table, nil
}

// indexHeader maps Threads and every model.Column to its field index.
func indexHeader(header []string) (int, map[model.Column]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, dup := positions[name]; !dup {
			positions[name] = i
		}
	}

	threadsIdx, ok := positions[model.ThreadsHeader]
	if !ok {
		return 0, nil, &ParseError{Column: model.ThreadsHeader, Err: ErrMissingColumn}
	}

	colIdx := make(map[model.Column]int, len(model.Columns))
	for _, c := range model.Columns {
		idx, ok := positions[c.Header()]
		if !ok {
			return 0, nil, &ParseError{Column: c.Header(), Err: ErrMissingColumn}
		}
		colIdx[c] = idx
	}
	return threadsIdx, colIdx, nil
}

func parseRow(record []string, line, threadsIdx int, colIdx map[model.Column]int) (model.ResultRow, error) {
	var row model.ResultRow

	cell := func(idx int, name string) (string, error) {
		if idx >= len(record) {
			return "", &ParseError{Line: line, Column: name, Err: ErrMissingColumn}
		}
		return strings.TrimSpace(record[idx]), nil
	}

	raw, err := cell(threadsIdx, model.ThreadsHeader)
	if err != nil {
		return row, err
	}
	threads, err := strconv.Atoi(raw)
	if err != nil {
		return row, &ParseError{Line: line, Column: model.ThreadsHeader, Value: raw, Err: err}
	}
	if threads < 1 {
		return row, &ParseError{Line: line, Column: model.ThreadsHeader, Value: raw, Err: ErrInvalidThreads}
	}
	row.Threads = threads

	for _, c := range model.Columns {
		raw, err := cell(colIdx[c], c.Header())
		if err != nil {
			return row, err
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return row, &ParseError{Line: line, Column: c.Header(), Value: raw, Err: err}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return row, &ParseError{Line: line, Column: c.Header(), Value: raw, Err: ErrNonFinite}
		}
		c.Set(&row, v)
	}
	return row, nil
}
