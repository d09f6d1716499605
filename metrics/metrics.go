// Package metrics records pipeline counters in a private Prometheus
// registry. A batch run exposes them by writing a node-exporter textfile.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the pipeline metrics. A nil *Recorder ignores every call.
type Recorder struct {
	registry *prometheus.Registry

	RowsRead      *prometheus.CounterVec
	RowsDropped   *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	AggregateRows *prometheus.GaugeVec
	GateOpen      *prometheus.GaugeVec
	LastRun       prometheus.Gauge
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		RowsRead: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "playstore_rows_read_total",
				Help: "Rows read from each source extract",
			},
			[]string{"dataset"},
		),
		RowsDropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "playstore_rows_dropped_total",
				Help: "Rows discarded during cleaning, by reason",
			},
			[]string{"dataset", "reason"},
		),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "playstore_stage_duration_seconds",
				Help:    "Duration of each pipeline stage",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
			[]string{"stage"},
		),
		AggregateRows: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "playstore_aggregate_rows",
				Help: "Rows emitted per aggregate in the last run",
			},
			[]string{"aggregate"},
		),
		GateOpen: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "playstore_gate_open",
				Help: "1 when the aggregate's time window was open in the last run",
			},
			[]string{"aggregate"},
		),
		LastRun: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "playstore_last_run_timestamp_seconds",
				Help: "Unix time of the last completed run",
			},
		),
	}

	r.registry.MustRegister(r.RowsRead, r.RowsDropped, r.StageDuration, r.AggregateRows, r.GateOpen, r.LastRun)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) Read(dataset string, n int) {
	if r == nil {
		return
	}
	r.RowsRead.WithLabelValues(dataset).Add(float64(n))
}

func (r *Recorder) Dropped(dataset, reason string, n int) {
	if r == nil || n == 0 {
		return
	}
	r.RowsDropped.WithLabelValues(dataset, reason).Add(float64(n))
}

// Stage observes the time elapsed since start.
func (r *Recorder) Stage(stage string, start time.Time) {
	if r == nil {
		return
	}
	r.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

func (r *Recorder) Aggregate(name string, rows int) {
	if r == nil {
		return
	}
	r.AggregateRows.WithLabelValues(name).Set(float64(rows))
}

func (r *Recorder) Gate(name string, open bool) {
	if r == nil {
		return
	}
	v := 0.0
	if open {
		v = 1
	}
	r.GateOpen.WithLabelValues(name).Set(v)
}

func (r *Recorder) Completed(at time.Time) {
	if r == nil {
		return
	}
	r.LastRun.Set(float64(at.Unix()))
}

// WriteTextfile writes the current metrics in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
