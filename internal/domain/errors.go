package domain

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns absent from the input. It is fatal:
// the pipeline stops before any output is written.
type SchemaError struct {
	Missing []Column
}

func (e *SchemaError) Error() string {
	names := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		names[i] = string(c)
	}
	return "missing required columns: " + strings.Join(names, ", ")
}

// ParseError reports a single cell that failed type conversion. It is always
// recovered locally into a missing-value marker and never aborts the run;
// the type exists so callers can log the failure with context.
type ParseError struct {
	Column Column
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s value %q: %v", e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ImputationError reports a numeric column with no values to impute from
// anywhere in the table. Per-city gaps fall back to the global median; only
// a column that is entirely missing is unrecoverable.
type ImputationError struct {
	Column Column
}

func (e *ImputationError) Error() string {
	return fmt.Sprintf("column %s has no values to impute from", e.Column)
}

// ValidationError reports a post-transformation invariant violation. It
// indicates a defect in an upstream stage, not bad input, and aborts the
// pipeline before any aggregation or reporting runs.
type ValidationError struct {
	Invariant string
	Detail    string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return "validation failed: " + e.Invariant
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Invariant, e.Detail)
}
