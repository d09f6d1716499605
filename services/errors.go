package services

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned when no application record survives cleaning.
var ErrEmptyDataset = errors.New("no application records survived cleaning")

// MissingColumnError reports a mandatory column absent from a source.
// It aborts the run.
type MissingColumnError struct {
	Dataset string
	Column  string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: missing required column %q", e.Dataset, e.Column)
}

// RowCoercionError reports a single cell that could not be parsed. The row
// is dropped; the run continues.
type RowCoercionError struct {
	Dataset string
	Line    int
	Field   string
	Value   string
	Err     error
}

func (e *RowCoercionError) Error() string {
	return fmt.Sprintf("%s line %d: cannot parse %s %q: %v", e.Dataset, e.Line, e.Field, e.Value, e.Err)
}

func (e *RowCoercionError) Unwrap() error { return e.Err }
