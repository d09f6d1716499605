package services

import (
	"strings"

	"playstore-analytics/models"
)

// FillAction is what cleaning does with a missing cell.
type FillAction int

const (
	// NoFill leaves the cell missing.
	NoFill FillAction = iota
	// FillMode replaces the cell with the column's most frequent value.
	FillMode
	// DropRow removes the whole row.
	DropRow
)

// FillPolicy maps columns to their FillAction. Columns not listed use Default.
type FillPolicy struct {
	Default FillAction
	Fields  map[string]FillAction
}

// AppFillPolicy drops apps without a rating; every other column takes its
// mode.
var AppFillPolicy = FillPolicy{
	Default: FillMode,
	Fields: map[string]FillAction{
		models.ColRating: DropRow,
	},
}

// ReviewFillPolicy: free text is never imputed.
var ReviewFillPolicy = FillPolicy{
	Default: NoFill,
	Fields: map[string]FillAction{
		models.ColReviewText: DropRow,
	},
}

// Action returns the action configured for column.
func (p FillPolicy) Action(column string) FillAction {
	if a, ok := p.Fields[column]; ok {
		return a
	}
	return p.Default
}

// Apply drops rows with a missing DropRow column, then fills FillMode
// columns with the mode computed over the surviving rows. Cells are filled
// in place. It returns the kept rows and the number dropped.
func (p FillPolicy) Apply(columns []string, rows []*models.RawRow) ([]*models.RawRow, int) {
	kept := make([]*models.RawRow, 0, len(rows))
	for _, row := range rows {
		if p.dropsRow(columns, row) {
			continue
		}
		kept = append(kept, row)
	}

	for _, col := range columns {
		if p.Action(col) != FillMode {
			continue
		}
		mode, ok := columnMode(col, kept)
		if !ok {
			continue
		}
		for _, row := range kept {
			if isMissing(row.Cells[col]) {
				row.Cells[col] = mode
			}
		}
	}

	return kept, len(rows) - len(kept)
}

func (p FillPolicy) dropsRow(columns []string, row *models.RawRow) bool {
	for _, col := range columns {
		if p.Action(col) == DropRow && isMissing(row.Cells[col]) {
			return true
		}
	}
	return false
}

// columnMode returns the most frequent non-missing value of col. Ties go to
// the smallest value in byte order. ok is false when every cell is missing.
func columnMode(col string, rows []*models.RawRow) (string, bool) {
	counts := make(map[string]int)
	for _, row := range rows {
		v := row.Cells[col]
		if isMissing(v) {
			continue
		}
		counts[v]++
	}

	var best string
	bestCount := 0
	for v, n := range counts {
		if n > bestCount || (n == bestCount && v < best) {
			best, bestCount = v, n
		}
	}
	return best, bestCount > 0
}

var missingTokens = map[string]struct{}{
	"": {}, "nan": {}, "na": {}, "n/a": {}, "null": {}, "none": {},
}

// isMissing reports whether a raw cell encodes "no value".
func isMissing(v string) bool {
	_, ok := missingTokens[strings.ToLower(strings.TrimSpace(v))]
	return ok
}
