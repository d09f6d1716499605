package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"playstore-analytics/models"
	"playstore-analytics/utils"
)

const appsHeader = "App,Category,Rating,Reviews,Size,Installs,Type,Price,Content Rating,Genres,Last Updated,Current Ver,Android Ver\n"

func newTestLogger() *utils.Logger { return utils.NewNopLogger() }

// loadApps parses CSV body lines (without header) through the Loader.
func loadApps(t *testing.T, body string) *models.RawTable {
	t.Helper()
	table, err := NewLoader(newTestLogger(), "United States").LoadApps(strings.NewReader(appsHeader + body))
	require.NoError(t, err)
	return table
}

func loadReviews(t *testing.T, body string) *models.RawTable {
	t.Helper()
	table, err := NewLoader(newTestLogger(), "United States").LoadReviews(strings.NewReader("App,Translated_Review\n" + body))
	require.NoError(t, err)
	return table
}

func f64(v float64) *float64 { return &v }

func app(name, category string, rating float64, reviews, installs int64) *models.App {
	return &models.App{
		Name: name, Category: category, Rating: rating, Reviews: reviews,
		Installs: installs, Type: "Free", Country: "United States",
	}
}

func review(appName, label string) *models.Review {
	return &models.Review{App: appName, Text: "text", Label: label}
}

func rowKeys(a models.Aggregate) [][]string {
	out := make([][]string, len(a.Rows))
	for i, r := range a.Rows {
		out[i] = r.Keys
	}
	return out
}
