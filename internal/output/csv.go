/*
PURPOSE:
  Writes benchmark results to a CSV file.
  Ensures data integrity by flushing writes immediately.

REQUIREMENTS:
  User-specified:
  - Output to results.csv in the format `plot` reads back.
  - Same number formatting as the published results
    (times and speedups to 2 decimals, efficiency to 1).

  Implementation-discovered:
  - Overwrite on each run; a benchmark run is one table.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.ResultRow

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write (critical for crash resilience).
  - Header order is model.Columns, which internal/results relies on only by name.

USAGE:
  w, err := output.NewCSVWriter("results.csv")
  w.Write(row)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - If CSV format changes, update header and record conversion.

RELATED FILES:
  - internal/model/types.go
  - internal/results/load.go

MAINTENANCE:
  - Update Write() mapping when ResultRow changes.
*/

package output

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/daryltucker/sirbench/internal/model"
)

// CSVWriter handles writing results to a CSV file.
type CSVWriter struct {
	closer io.Closer
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	cw, err := newCSVWriter(f, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return cw, nil
}

func newCSVWriter(w io.Writer, c io.Closer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(model.Columns)+1)
	header = append(header, model.ThreadsHeader)
	for _, col := range model.Columns {
		header = append(header, col.Header())
	}
	if err := cw.Write(header); err != nil {
		return nil, err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}

	return &CSVWriter{
		closer: c,
		writer: cw,
	}, nil
}

// Write writes a single row to the CSV file.
// It is thread-safe.
func (cw *CSVWriter) Write(r model.ResultRow) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	record := []string{
		strconv.Itoa(r.Threads),
		formatFloat(r.ExecutorTime, 2),
		formatFloat(r.ExecutorSpeedup, 2),
		formatFloat(r.ExecutorEfficiency, 1),
		formatFloat(r.ForkJoinTime, 2),
		formatFloat(r.ForkJoinSpeedup, 2),
		formatFloat(r.ForkJoinEfficiency, 1),
	}

	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.closer.Close()
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
