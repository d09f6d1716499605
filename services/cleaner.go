package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"playstore-analytics/models"
	"playstore-analytics/utils"
)

const (
	maxRating = 5.0
	kbPerMB   = 1024.0
)

// dateLayouts are tried in order for the Last Updated column.
var dateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02",
	"1/2/2006",
}

var errOutOfRange = errors.New("out of range")

// Cleaner transforms raw rows into clean, validated records.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// CleanApps applies the app fill policy, removes exact duplicate rows,
// coerces every cell and discards rows whose rating falls outside [0, 5].
func (c *Cleaner) CleanApps(table *models.RawTable, stats *models.CleaningStats) []*models.App {
	stats.AppsRead = len(table.Rows)

	rows, dropped := AppFillPolicy.Apply(table.Columns, table.Rows)
	stats.AppsMissingRating = dropped

	seen := utils.NewKeySet()
	result := make([]*models.App, 0, len(rows))

	for _, row := range rows {
		if !seen.Add(rowKey(table.Columns, row)) {
			stats.AppsDuplicate++
			continue
		}

		app, err := parseApp(row)
		if err != nil {
			var coerce *RowCoercionError
			if errors.As(err, &coerce) && errors.Is(coerce.Err, errOutOfRange) {
				stats.AppsOutOfRange++
			} else {
				stats.AppsUnparsable++
			}
			c.logger.Debug("[cleaner] Dropping app row: %v", err)
			continue
		}
		result = append(result, app)
	}

	stats.AppsKept = len(result)
	c.logger.Info("[cleaner] Cleaned apps %d → %d (no rating %d, duplicate %d, unparsable %d, out of range %d)",
		stats.AppsRead, stats.AppsKept, stats.AppsMissingRating, stats.AppsDuplicate,
		stats.AppsUnparsable, stats.AppsOutOfRange)
	return result
}

// CleanReviews drops reviews without text.
func (c *Cleaner) CleanReviews(table *models.RawTable, stats *models.CleaningStats) []*models.Review {
	stats.ReviewsRead = len(table.Rows)

	rows, dropped := ReviewFillPolicy.Apply(table.Columns, table.Rows)
	stats.ReviewsMissingText = dropped

	result := make([]*models.Review, 0, len(rows))
	for _, row := range rows {
		result = append(result, &models.Review{
			App:  strings.TrimSpace(row.Cells[models.ColReviewApp]),
			Text: normaliseText(row.Cells[models.ColReviewText]),
		})
	}

	stats.ReviewsKept = len(result)
	c.logger.Info("[cleaner] Cleaned reviews %d → %d (no text %d)",
		stats.ReviewsRead, stats.ReviewsKept, stats.ReviewsMissingText)
	return result
}

// Refine enforces the cleaned-record invariants on typed apps: duplicates
// are removed (first kept) and ratings must lie in [0, 5]. Running it on its
// own output changes nothing.
func (c *Cleaner) Refine(apps []*models.App) []*models.App {
	seen := utils.NewKeySet()
	result := make([]*models.App, 0, len(apps))
	for _, a := range apps {
		if a.Rating < 0 || a.Rating > maxRating {
			continue
		}
		if !seen.Add(appKey(a)) {
			continue
		}
		result = append(result, a)
	}
	if dropped := len(apps) - len(result); dropped > 0 {
		c.logger.Debug("[cleaner] Refine dropped %d apps", dropped)
	}
	return result
}

func parseApp(row *models.RawRow) (*models.App, error) {
	cell := func(col string) string { return strings.TrimSpace(row.Cells[col]) }
	fail := func(col string, err error) error {
		return &RowCoercionError{Dataset: DatasetApps, Line: row.Line, Field: col, Value: row.Cells[col], Err: err}
	}

	rating, err := strconv.ParseFloat(cell(models.ColRating), 64)
	if err != nil {
		return nil, fail(models.ColRating, err)
	}
	if rating < 0 || rating > maxRating {
		return nil, fail(models.ColRating, errOutOfRange)
	}

	reviews, err := parseCount(cell(models.ColReviews), false)
	if err != nil {
		return nil, fail(models.ColReviews, err)
	}
	installs, err := parseCount(cell(models.ColInstalls), true)
	if err != nil {
		return nil, fail(models.ColInstalls, err)
	}
	price, err := parsePrice(cell(models.ColPrice))
	if err != nil {
		return nil, fail(models.ColPrice, err)
	}

	return &models.App{
		Name:          cell(models.ColApp),
		Category:      cell(models.ColCategory),
		Rating:        rating,
		Reviews:       reviews,
		SizeMB:        parseSize(cell(models.ColSize)),
		Installs:      installs,
		Type:          cell(models.ColType),
		Price:         price,
		ContentRating: cell(models.ColContentRating),
		Genres:        splitGenres(cell(models.ColGenres)),
		LastUpdated:   parseDate(cell(models.ColLastUpdated)),
		CurrentVer:    cell(models.ColCurrentVer),
		AndroidVer:    cell(models.ColAndroidVer),
		Country:       cell(models.ColCountry),
	}, nil
}

// parseCount parses "1,000,000+" style counts. The trailing "+" is only
// accepted for install counts.
func parseCount(raw string, allowPlus bool) (int64, error) {
	s := strings.ReplaceAll(raw, ",", "")
	if allowPlus {
		s = strings.TrimSuffix(s, "+")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errOutOfRange
	}
	return n, nil
}

// parsePrice parses "$4.99" and "0".
func parsePrice(raw string) (float64, error) {
	p, err := strconv.ParseFloat(strings.TrimPrefix(raw, "$"), 64)
	if err != nil {
		return 0, err
	}
	if p < 0 {
		return 0, errOutOfRange
	}
	return p, nil
}

// parseSize converts "19M" and "512k" to megabytes. Any other form, such as
// "Varies with device", yields nil.
func parseSize(raw string) *float64 {
	var unit float64
	switch {
	case strings.HasSuffix(raw, "M"):
		unit = 1
	case strings.HasSuffix(raw, "k"):
		unit = 1 / kbPerMB
	default:
		return nil
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw[:len(raw)-1]), 64)
	if err != nil {
		return nil
	}
	mb := v * unit
	return &mb
}

func parseDate(raw string) *time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// splitGenres splits "Art & Design;Pretend Play" into its genres.
func splitGenres(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			genres = append(genres, p)
		}
	}
	return genres
}

func rowKey(columns []string, row *models.RawRow) string {
	var b strings.Builder
	for _, col := range columns {
		b.WriteString(row.Cells[col])
		b.WriteByte(0x1f)
	}
	return b.String()
}

func appKey(a *models.App) string {
	size, updated := "nil", "nil"
	if a.SizeMB != nil {
		size = strconv.FormatFloat(*a.SizeMB, 'g', -1, 64)
	}
	if a.LastUpdated != nil {
		updated = a.LastUpdated.Format(time.RFC3339)
	}
	return fmt.Sprintf("%q|%q|%v|%d|%s|%d|%q|%v|%q|%q|%s|%q|%q|%q",
		a.Name, a.Category, a.Rating, a.Reviews, size, a.Installs, a.Type, a.Price,
		a.ContentRating, strings.Join(a.Genres, ";"), updated, a.CurrentVer, a.AndroidVer, a.Country)
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
