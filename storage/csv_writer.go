package storage

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"playstore-analytics/models"
)

// GatesFile lists every gated aggregate with its visibility.
const GatesFile = "gates.csv"

// CSVWriter writes each available aggregate to <dir>/<name>.csv.
// It is safe for concurrent use.
type CSVWriter struct {
	mu  sync.Mutex
	dir string
}

// NewCSVWriter creates the output directory if needed.
func NewCSVWriter(dir string) (*CSVWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}
	return &CSVWriter{dir: dir}, nil
}

// Path returns the file an aggregate is written to.
func (c *CSVWriter) Path(name string) string {
	return filepath.Join(c.dir, name+".csv")
}

// Write replaces the aggregate files and the gates file.
func (c *CSVWriter) Write(report *models.Report) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range report.Aggregates {
		agg := &report.Aggregates[i]
		if !agg.Available {
			continue
		}
		if err := c.writeAggregate(agg); err != nil {
			return err
		}
	}
	return c.writeGates(gateRecords(report))
}

func (c *CSVWriter) writeAggregate(agg *models.Aggregate) error {
	header := make([]string, 0, len(agg.KeyColumns)+len(agg.ValueColumns)+1)
	header = append(header, agg.KeyColumns...)
	header = append(header, agg.ValueColumns...)
	header = append(header, "flagged")

	records := [][]string{header}
	for _, row := range agg.Rows {
		rec := make([]string, 0, len(header))
		rec = append(rec, row.Keys...)
		for _, v := range row.Values {
			rec = append(rec, formatCell(v))
		}
		rec = append(rec, strconv.FormatBool(row.Flagged))
		records = append(records, rec)
	}
	return writeFile(c.Path(agg.Name), records)
}

func (c *CSVWriter) writeGates(gates []GateRecord) error {
	records := [][]string{{"aggregate", "available", "notice"}}
	for _, g := range gates {
		records = append(records, []string{g.Aggregate, strconv.FormatBool(g.Available), g.Notice})
	}
	return writeFile(filepath.Join(c.dir, GatesFile), records)
}

func writeFile(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("csv: write %q: %w", path, err)
	}
	return nil
}

// formatCell renders NaN as an empty cell.
func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Close is a no-op; every Write closes its files.
func (c *CSVWriter) Close() error {
	return nil
}
