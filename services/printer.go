package services

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"playstore-analytics/models"
)

const printRows = 10

// PrintReport writes a terminal summary of the report.
func PrintReport(w io.Writer, r *models.Report) {
	sep := strings.Repeat("═", 64)
	thin := strings.Repeat("─", 64)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  📊 PLAY STORE REVIEW ANALYTICS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	s := r.Stats
	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Run                    : %s\n", r.RunID)
	fmt.Fprintf(w, "  Apps kept / read       : \033[1m%d\033[0m / %d\n", s.AppsKept, s.AppsRead)
	fmt.Fprintf(w, "  Dropped (no rating)    : %d\n", s.AppsMissingRating)
	fmt.Fprintf(w, "  Dropped (duplicate)    : %d\n", s.AppsDuplicate)
	fmt.Fprintf(w, "  Dropped (unparsable)   : %d\n", s.AppsUnparsable)
	fmt.Fprintf(w, "  Dropped (out of range) : %d\n", s.AppsOutOfRange)
	fmt.Fprintf(w, "  Reviews kept / read    : \033[1m%d\033[0m / %d\n", s.ReviewsKept, s.ReviewsRead)
	fmt.Fprintln(w)

	for i := range r.Aggregates {
		printAggregate(w, &r.Aggregates[i], thin)
	}

	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)
}

func printAggregate(w io.Writer, a *models.Aggregate, thin string) {
	fmt.Fprintf(w, "\033[1;33m  %s\033[0m\n", a.Title)
	fmt.Fprintf(w, "  %s\n", thin)

	if !a.Available {
		fmt.Fprintf(w, "  \033[2m%s\033[0m\n\n", a.Notice)
		return
	}
	if len(a.Rows) == 0 {
		fmt.Fprintf(w, "  No data\n\n")
		return
	}

	fmt.Fprintf(w, "  \033[2m%s | %s\033[0m\n",
		strings.Join(a.KeyColumns, ", "), strings.Join(a.ValueColumns, ", "))
	for i, row := range a.Rows {
		if i == printRows {
			fmt.Fprintf(w, "  … %d more rows\n", len(a.Rows)-printRows)
			break
		}
		values := make([]string, len(row.Values))
		for j, v := range row.Values {
			values[j] = formatValue(v)
		}
		marker := " "
		if row.Flagged {
			marker = "\033[1;31m★\033[0m"
		}
		fmt.Fprintf(w, "  %s %-40s %s\n", marker, truncate(strings.Join(row.Keys, " / "), 40), strings.Join(values, "  "))
	}
	if a.Insight != "" {
		fmt.Fprintf(w, "  \033[3m%s\033[0m\n", a.Insight)
	}
	fmt.Fprintln(w)
}

func formatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "n/a"
	case v == math.Trunc(v) && math.Abs(v) < 1e15:
		return strconv.FormatInt(int64(v), 10)
	default:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
