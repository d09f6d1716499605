package services

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"playstore-analytics/models"
)

func TestPrintReport(t *testing.T) {
	top := newAggregate(AggTopCategories)
	top.Rows = []models.Row{{Keys: []string{"FAMILY"}, Values: []float64{1832}}}
	bubble := newAggregate(AggSizeVsRating)
	bubble.Rows = []models.Row{{Keys: []string{"Tinder", "Dating"}, Values: []float64{math.NaN(), 4.0, 100000, 0.55}, Flagged: true}}
	geo := newAggregate(AggInstallsByCountry)
	geo.Available = false
	geo.Notice = "Choropleth map is only available between 6 PM and 8 PM IST."

	var buf bytes.Buffer
	PrintReport(&buf, &models.Report{RunID: "run-1", Aggregates: []models.Aggregate{top, geo, bubble}})
	out := buf.String()

	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "Top Categories on Play Store")
	assert.Contains(t, out, "1832")
	assert.Contains(t, out, geo.Notice)
	assert.Contains(t, out, "n/a  4  100000  0.55")
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "n/a", formatValue(math.NaN()))
	assert.Equal(t, "42", formatValue(42))
	assert.Equal(t, "3.14", formatValue(3.14159))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
