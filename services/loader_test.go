package services

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playstore-analytics/models"
)

func TestLoadAppsReadsCellsAsStrings(t *testing.T) {
	table := loadApps(t, `Photo Editor,ART_AND_DESIGN,4.1,159,19M,"10,000+",Free,0,Everyone,Art & Design,"January 7, 2018",1.0.0,4.0.3 and up
`)

	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Equal(t, 2, row.Line)
	assert.Equal(t, "10,000+", row.Cells[models.ColInstalls])
	assert.Equal(t, "4.1", row.Cells[models.ColRating])
	assert.Equal(t, "January 7, 2018", row.Cells[models.ColLastUpdated])
}

func TestLoadAppsDefaultsCountry(t *testing.T) {
	table := loadApps(t, "A,GAME,4.0,10,1M,10+,Free,0,Everyone,Arcade,\"May 1, 2018\",1,4.0\n")

	assert.Contains(t, table.Columns, models.ColCountry)
	assert.Equal(t, "United States", table.Rows[0].Cells[models.ColCountry])
}

func TestLoadAppsKeepsCountryColumn(t *testing.T) {
	csv := "App,Category,Rating,Reviews,Size,Installs,Type,Price,Genres,Last Updated,Country\n" +
		"A,GAME,4.0,10,1M,10+,Free,0,Arcade,\"May 1, 2018\",India\n"
	table, err := NewLoader(newTestLogger(), "United States").LoadApps(strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, "India", table.Rows[0].Cells[models.ColCountry])
}

func TestLoadAppsMissingColumn(t *testing.T) {
	csv := "App,Category,Reviews,Size,Installs,Type,Price,Genres,Last Updated\n" +
		"A,GAME,10,1M,10+,Free,0,Arcade,\"May 1, 2018\"\n"
	_, err := NewLoader(newTestLogger(), "United States").LoadApps(strings.NewReader(csv))

	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing), "got %v", err)
	assert.Equal(t, DatasetApps, missing.Dataset)
	assert.Equal(t, models.ColRating, missing.Column)
}

func TestLoadReviewsMissingColumn(t *testing.T) {
	_, err := NewLoader(newTestLogger(), "").LoadReviews(strings.NewReader("App,Review\nA,good\n"))

	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, models.ColReviewText, missing.Column)
}

func TestLoadReviewsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")
	require.NoError(t, os.WriteFile(path, []byte("App,Translated_Review\nA,Great app\nB,nan\n"), 0o644))

	table, err := NewLoader(newTestLogger(), "").LoadReviewsFile(path)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.True(t, isMissing(table.Rows[1].Cells[models.ColReviewText]))
}

func TestLoadAppsFileMissing(t *testing.T) {
	_, err := NewLoader(newTestLogger(), "").LoadAppsFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
