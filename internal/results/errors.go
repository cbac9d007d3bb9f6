/*
PURPOSE:
  Error values for loading and summarizing results tables.

REQUIREMENTS:
  User-specified:
  - Distinguish a malformed source from a source with no data rows.

  Implementation-discovered:
  - Callers need the line, column and raw value to point users at the bad cell.

ARCHITECTURE INTEGRATION:
  - Returned by: internal/results (LoadTable, FindBest), internal/chart (Render)
  - Checked by: internal/cli tests via errors.Is / errors.As

ERROR HANDLING:
  - ParseError wraps a sentinel or the strconv/csv cause; use errors.Is.

IMPLEMENTATION RULES:
  - Sentinels are never returned bare from a cell check; wrap them in ParseError.

USAGE:
  var perr *results.ParseError
  if errors.As(err, &perr) { ... }

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/results/load.go

MAINTENANCE:
  - Add a sentinel here for each new cell rule in parseRow.
*/

package results

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTable is returned when a results source or table has no data rows.
	ErrEmptyTable = errors.New("results table has no data rows")

	// ErrMissingColumn is wrapped by ParseError when a required header is absent.
	ErrMissingColumn = errors.New("required column missing")

	// ErrInvalidThreads is wrapped by ParseError when Threads is below 1.
	ErrInvalidThreads = errors.New("thread count must be at least 1")

	// ErrNonFinite is wrapped by ParseError when a cell parses to NaN or Inf.
	ErrNonFinite = errors.New("value must be a finite number")
)

// ParseError describes a malformed results source.
// Line is the 1-based CSV line, or 0 when the problem is in the header as a whole.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line == 0:
		return fmt.Sprintf("parse results: column %q: %v", e.Column, e.Err)
	case e.Column == "":
		return fmt.Sprintf("parse results: line %d: %v", e.Line, e.Err)
	default:
		return fmt.Sprintf("parse results: line %d, column %q, value %q: %v", e.Line, e.Column, e.Value, e.Err)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
