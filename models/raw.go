package models

// RawRow holds one unprocessed row of a source extract, before any cleaning
// or coercion. Cells are keyed by column name.
type RawRow struct {
	Line  int
	Cells map[string]string
}

// RawTable is a source extract as read from disk: its header plus rows.
type RawTable struct {
	Dataset string
	Columns []string
	Rows    []*RawRow
}
