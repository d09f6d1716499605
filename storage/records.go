package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"

	"playstore-analytics/models"
)

// BucketRecord is one stored (aggregate, key, metric) value. Key holds the
// row keys as a JSON array.
type BucketRecord struct {
	RunID     string          `db:"run_id"`
	Aggregate string          `db:"aggregate"`
	Key       string          `db:"key_json"`
	Metric    string          `db:"metric"`
	Value     sql.NullFloat64 `db:"value"`
	Rank      int             `db:"rank_no"`
	Flagged   bool            `db:"flagged"`
}

// GateRecord is the visibility of one gated aggregate in a run.
type GateRecord struct {
	RunID     string `db:"run_id"`
	Aggregate string `db:"aggregate"`
	Available bool   `db:"available"`
	Notice    string `db:"notice"`
}

// bucketRecords flattens every available aggregate of the report. NaN
// values are stored as NULL.
func bucketRecords(r *models.Report) ([]BucketRecord, error) {
	var out []BucketRecord
	for i := range r.Aggregates {
		agg := &r.Aggregates[i]
		if !agg.Available {
			continue
		}
		for _, b := range agg.Buckets() {
			key, err := json.Marshal(b.Key)
			if err != nil {
				return nil, fmt.Errorf("encode key of %s: %w", agg.Name, err)
			}
			out = append(out, BucketRecord{
				RunID:     r.RunID,
				Aggregate: agg.Name,
				Key:       string(key),
				Metric:    b.Metric,
				Value:     sql.NullFloat64{Float64: b.Value, Valid: !math.IsNaN(b.Value)},
				Rank:      b.Rank,
				Flagged:   b.Flagged,
			})
		}
	}
	return out, nil
}

func gateRecords(r *models.Report) []GateRecord {
	var out []GateRecord
	for _, agg := range r.Aggregates {
		if !agg.Gated {
			continue
		}
		out = append(out, GateRecord{
			RunID:     r.RunID,
			Aggregate: agg.Name,
			Available: agg.Available,
			Notice:    agg.Notice,
		})
	}
	return out
}
