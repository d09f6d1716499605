package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder()

	r.Read("apps", 10)
	r.Read("apps", 5)
	r.Dropped("apps", "duplicate", 2)
	r.Dropped("apps", "unparsable", 0)
	r.Aggregate("top_categories", 7)
	r.Gate("size_vs_rating", true)
	r.Gate("installs_by_country", false)

	assert.Equal(t, 15.0, testutil.ToFloat64(r.RowsRead.WithLabelValues("apps")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.RowsDropped.WithLabelValues("apps", "duplicate")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.RowsDropped), "zero drops are not recorded")
	assert.Equal(t, 7.0, testutil.ToFloat64(r.AggregateRows.WithLabelValues("top_categories")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.GateOpen.WithLabelValues("size_vs_rating")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.GateOpen.WithLabelValues("installs_by_country")))
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Read("apps", 1)
		r.Dropped("apps", "x", 1)
		r.Stage("load", time.Now())
		r.Aggregate("a", 1)
		r.Gate("g", true)
		r.Completed(time.Now())
	})
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.Read("reviews", 3)
	r.Completed(time.Unix(1700000000, 0))

	path := filepath.Join(t.TempDir(), "playstore.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `playstore_rows_read_total{dataset="reviews"} 3`)
	assert.Contains(t, string(data), "playstore_last_run_timestamp_seconds")
}
