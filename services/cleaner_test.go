package services

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playstore-analytics/models"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		raw       string
		allowPlus bool
		want      int64
		wantErr   bool
	}{
		{"1,000,000+", true, 1000000, false},
		{"0", true, 0, false},
		{"159", false, 159, false},
		{"3.0M", false, 0, true},
		{"10+", false, 0, true},
		{"Free", true, 0, true},
		{"-5", false, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseCount(tt.raw, tt.allowPlus)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePrice(t *testing.T) {
	p, err := parsePrice("$4.99")
	require.NoError(t, err)
	assert.InDelta(t, 4.99, p, 1e-9)

	p, err = parsePrice("0")
	require.NoError(t, err)
	assert.Zero(t, p)

	_, err = parsePrice("Everyone")
	assert.Error(t, err)
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		raw  string
		want *float64
	}{
		{"19M", f64(19)},
		{"512k", f64(0.5)},
		{"8.7M", f64(8.7)},
		{"Varies with device", nil},
		{"1,000+", nil},
		{"", nil},
		{"M", nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := parseSize(tt.raw)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestParseDate(t *testing.T) {
	got := parseDate("January 7, 2018")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2018, time.January, 7, 0, 0, 0, 0, time.UTC), *got)

	assert.NotNil(t, parseDate("2017-06-30"))
	assert.Nil(t, parseDate("1.0.19"))
}

func TestSplitGenres(t *testing.T) {
	assert.Equal(t, []string{"Art & Design", "Pretend Play"}, splitGenres("Art & Design;Pretend Play"))
	assert.Equal(t, []string{"Tools"}, splitGenres("Tools;"))
	assert.Nil(t, splitGenres(""))
}

func TestCleanAppsCoercesRow(t *testing.T) {
	table := loadApps(t, `Photo Editor,ART_AND_DESIGN,4.5,159,15M,"1,000,000+",Free,$0,Everyone,Art & Design;Creativity,"January 7, 2018",1.0.0,4.0.3 and up
`)
	var stats models.CleaningStats

	apps := NewCleaner(newTestLogger()).CleanApps(table, &stats)

	require.Len(t, apps, 1)
	a := apps[0]
	assert.Equal(t, "Photo Editor", a.Name)
	assert.Equal(t, int64(1000000), a.Installs)
	assert.Equal(t, int64(159), a.Reviews)
	assert.Zero(t, a.Price)
	require.NotNil(t, a.SizeMB)
	assert.InDelta(t, 15.0, *a.SizeMB, 1e-9)
	assert.Equal(t, []string{"Art & Design", "Creativity"}, a.Genres)
	require.NotNil(t, a.LastUpdated)
	assert.Equal(t, 2018, a.LastUpdated.Year())
	assert.Equal(t, "United States", a.Country)
	assert.Equal(t, 1, stats.AppsKept)
}

func TestCleanAppsDropReasons(t *testing.T) {
	table := loadApps(t, `Good,GAME,4.2,10,1M,100+,Free,0,Everyone,Arcade,"May 1, 2018",1,4.0
Good,GAME,4.2,10,1M,100+,Free,0,Everyone,Arcade,"May 1, 2018",1,4.0
NoRating,GAME,,10,1M,100+,Free,0,Everyone,Arcade,"May 1, 2018",1,4.0
Shifted,GAME,19,10,1M,100+,Free,0,Everyone,Arcade,"May 1, 2018",1,4.0
BadInstalls,GAME,3.1,10,1M,Free,Free,0,Everyone,Arcade,"May 1, 2018",1,4.0
`)
	var stats models.CleaningStats

	apps := NewCleaner(newTestLogger()).CleanApps(table, &stats)

	require.Len(t, apps, 1)
	assert.Equal(t, "Good", apps[0].Name)
	assert.Equal(t, models.CleaningStats{
		AppsRead:          5,
		AppsMissingRating: 1,
		AppsDuplicate:     1,
		AppsUnparsable:    1,
		AppsOutOfRange:    1,
		AppsKept:          1,
	}, stats)
}

func TestCleanAppsFillsMode(t *testing.T) {
	table := loadApps(t, `A,GAME,4.0,10,1M,100+,Free,0,Everyone,Arcade,"May 1, 2018",1,4.0
B,GAME,4.0,10,1M,100+,,0,Everyone,Arcade,"May 1, 2018",1,4.0
C,GAME,4.0,10,1M,100+,Free,0,Teen,Arcade,"May 1, 2018",1,4.0
D,TOOLS,4.0,10,1M,100+,Paid,$1.99,Teen,Tools,"May 1, 2018",1,
`)
	var stats models.CleaningStats

	apps := NewCleaner(newTestLogger()).CleanApps(table, &stats)

	require.Len(t, apps, 4)
	assert.Equal(t, "Free", apps[1].Type)
	assert.Equal(t, "4.0", apps[3].AndroidVer)
}

func TestCleanReviews(t *testing.T) {
	table := loadReviews(t, "A,  Great   app \nA,nan\nB,\nB,Fine\n")
	var stats models.CleaningStats

	reviews := NewCleaner(newTestLogger()).CleanReviews(table, &stats)

	require.Len(t, reviews, 2)
	assert.Equal(t, "Great app", reviews[0].Text)
	assert.Equal(t, "B", reviews[1].App)
	assert.Equal(t, 4, stats.ReviewsRead)
	assert.Equal(t, 2, stats.ReviewsMissingText)
	assert.Equal(t, 2, stats.ReviewsKept)
}

func TestRefineIsIdempotent(t *testing.T) {
	c := NewCleaner(newTestLogger())
	dup := app("A", "GAME", 4.0, 10, 100)
	apps := []*models.App{
		dup,
		app("A", "GAME", 4.0, 10, 100),
		app("B", "GAME", 5.5, 10, 100),
		app("C", "GAME", -1, 10, 100),
		app("D", "TOOLS", 0, 1, 1),
	}

	once := c.Refine(apps)
	twice := c.Refine(once)

	require.Len(t, once, 2)
	assert.Same(t, dup, once[0])
	assert.Equal(t, once, twice)
}

func TestRefineThenDeriveIsStable(t *testing.T) {
	c := NewCleaner(newTestLogger())
	d := NewDeriver()
	apps := []*models.App{app("A", "GAME", 4.5, 10, 1000), app("B", "TOOLS", 1.5, 3, 50)}

	first := c.Refine(apps)
	d.Derive(first)
	snapshot := make([]models.App, len(first))
	for i, a := range first {
		snapshot[i] = *a
	}
	second := c.Refine(first)
	d.Derive(second)

	require.Len(t, second, len(snapshot))
	for i := range second {
		assert.Equal(t, snapshot[i], *second[i])
	}
	assert.InDelta(t, math.Log1p(1000), second[0].LogInstalls, 1e-12)
}
