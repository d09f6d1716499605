package services

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"playstore-analytics/models"
	"playstore-analytics/utils"
)

const (
	DatasetApps    = "apps"
	DatasetReviews = "reviews"
)

var requiredAppColumns = []string{
	models.ColApp, models.ColCategory, models.ColRating, models.ColReviews, models.ColSize,
	models.ColInstalls, models.ColType, models.ColPrice, models.ColLastUpdated, models.ColGenres,
}

var requiredReviewColumns = []string{models.ColReviewApp, models.ColReviewText}

// Loader reads the two source extracts into raw string tables.
type Loader struct {
	logger         *utils.Logger
	defaultCountry string
}

// NewLoader creates a Loader. defaultCountry is assigned to every app row
// when the extract has no Country column.
func NewLoader(logger *utils.Logger, defaultCountry string) *Loader {
	return &Loader{logger: logger, defaultCountry: defaultCountry}
}

// LoadAppsFile opens path and reads the application extract.
func (l *Loader) LoadAppsFile(path string) (*models.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open apps %q: %w", path, err)
	}
	defer f.Close()
	return l.LoadApps(f)
}

// LoadReviewsFile opens path and reads the review extract.
func (l *Loader) LoadReviewsFile(path string) (*models.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open reviews %q: %w", path, err)
	}
	defer f.Close()
	return l.LoadReviews(f)
}

// LoadApps reads the application extract. A missing mandatory column is a
// *MissingColumnError.
func (l *Loader) LoadApps(r io.Reader) (*models.RawTable, error) {
	table, err := readTable(r, DatasetApps, requiredAppColumns)
	if err != nil {
		return nil, err
	}

	if !hasColumn(table.Columns, models.ColCountry) {
		l.logger.Info("[loader] No %s column, defaulting every app to %q", models.ColCountry, l.defaultCountry)
		table.Columns = append(table.Columns, models.ColCountry)
		for _, row := range table.Rows {
			row.Cells[models.ColCountry] = l.defaultCountry
		}
	}

	l.logger.Info("[loader] Read %d app rows (%d columns)", len(table.Rows), len(table.Columns))
	return table, nil
}

// LoadReviews reads the review extract.
func (l *Loader) LoadReviews(r io.Reader) (*models.RawTable, error) {
	table, err := readTable(r, DatasetReviews, requiredReviewColumns)
	if err != nil {
		return nil, err
	}
	l.logger.Info("[loader] Read %d review rows", len(table.Rows))
	return table, nil
}

// readTable loads a CSV with a header row into a dataframe of strings and
// unpacks it into RawRows. Type detection is off so that locale-formatted
// cells reach the cleaner untouched.
func readTable(r io.Reader, dataset string, required []string) (*models.RawTable, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("loader: read %s csv: %w", dataset, df.Err)
	}

	columns := df.Names()
	for _, col := range required {
		if !hasColumn(columns, col) {
			return nil, &MissingColumnError{Dataset: dataset, Column: col}
		}
	}

	nrows := df.Nrow()
	rows := make([]*models.RawRow, nrows)
	for i := range rows {
		// +2: one for the header, one for 1-based lines.
		rows[i] = &models.RawRow{Line: i + 2, Cells: make(map[string]string, len(columns))}
	}
	for _, col := range columns {
		for i, cell := range df.Col(col).Records() {
			rows[i].Cells[col] = cell
		}
	}

	return &models.RawTable{Dataset: dataset, Columns: columns, Rows: rows}, nil
}

func hasColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}
