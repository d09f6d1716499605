package models

import (
	"time"
)

// Row is one line of an aggregate table.
type Row struct {
	Keys    []string
	Values  []float64
	Flagged bool
}

// Bucket is a single keyed metric value flattened out of an Aggregate.
type Bucket struct {
	Key     []string
	Metric  string
	Value   float64
	Rank    int
	Flagged bool
}

// Aggregate is one summarized view produced by the insight service.
// KeyColumns and ValueColumns describe the shape of every Row.
type Aggregate struct {
	Name         string
	Title        string
	Insight      string
	KeyColumns   []string
	ValueColumns []string
	Rows         []Row
	Ranked       bool

	// Gated aggregates are only computed inside their time window.
	Gated     bool
	Available bool
	Notice    string
}

// Buckets flattens the table into one Bucket per (row, value column).
// Rank is the 1-based row position for ranked aggregates, 0 otherwise.
func (a *Aggregate) Buckets() []Bucket {
	out := make([]Bucket, 0, len(a.Rows)*len(a.ValueColumns))
	for i, row := range a.Rows {
		rank := 0
		if a.Ranked {
			rank = i + 1
		}
		for j, metric := range a.ValueColumns {
			if j >= len(row.Values) {
				break
			}
			out = append(out, Bucket{
				Key:     row.Keys,
				Metric:  metric,
				Value:   row.Values[j],
				Rank:    rank,
				Flagged: row.Flagged,
			})
		}
	}
	return out
}

// CleaningStats counts what ingestion and cleaning did to each dataset.
type CleaningStats struct {
	AppsRead          int
	AppsMissingRating int
	AppsDuplicate     int
	AppsUnparsable    int
	AppsOutOfRange    int
	AppsKept          int

	ReviewsRead        int
	ReviewsMissingText int
	ReviewsKept        int
}

// Report is the full result of one pipeline run, in presentation order.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	Stats       CleaningStats
	Aggregates  []Aggregate
}

// Aggregate returns the aggregate with the given name, or nil.
func (r *Report) Aggregate(name string) *Aggregate {
	for i := range r.Aggregates {
		if r.Aggregates[i].Name == name {
			return &r.Aggregates[i]
		}
	}
	return nil
}
