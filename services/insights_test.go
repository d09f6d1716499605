package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playstore-analytics/models"
)

func dated(a *models.App, y int, m time.Month, d int) *models.App {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	a.LastUpdated = &t
	return a
}

func TestTopCategoriesTiesKeepInputOrder(t *testing.T) {
	apps := []*models.App{
		app("a", "TOOLS", 4, 1, 1),
		app("b", "FAMILY", 4, 1, 1),
		app("c", "GAME", 4, 1, 1),
		app("d", "GAME", 4, 1, 1),
		app("e", "FAMILY", 4, 1, 1),
		app("f", "TOOLS", 4, 1, 1),
		app("g", "MEDICAL", 4, 1, 1),
	}

	agg := TopCategories(apps, 3)

	assert.Equal(t, [][]string{{"TOOLS"}, {"FAMILY"}, {"GAME"}}, rowKeys(agg))
	assert.Equal(t, []float64{2}, agg.Rows[0].Values)
	assert.True(t, agg.Ranked)
	assert.Equal(t, 1, agg.Buckets()[0].Rank)
	assert.Equal(t, 3, agg.Buckets()[2].Rank)
}

func TestInstallsAndRevenueByCategory(t *testing.T) {
	paid := app("p", "TOOLS", 4, 1, 1000)
	paid.Revenue = 2990
	apps := []*models.App{app("a", "GAME", 4, 1, 500000), paid, app("b", "GAME", 4, 1, 500000)}

	installs := InstallsByCategory(apps, 10)
	assert.Equal(t, [][]string{{"GAME"}, {"TOOLS"}}, rowKeys(installs))
	assert.Equal(t, []float64{1000000}, installs.Rows[0].Values)

	revenue := RevenueByCategory(apps, 10)
	assert.Equal(t, [][]string{{"TOOLS"}, {"GAME"}}, rowKeys(revenue))
	assert.Equal(t, []float64{2990}, revenue.Rows[0].Values)
}

func TestTypeDistribution(t *testing.T) {
	paid := app("p", "TOOLS", 4, 1, 1)
	paid.Type = "Paid"
	agg := TypeDistribution([]*models.App{paid, app("a", "GAME", 4, 1, 1), app("b", "GAME", 4, 1, 1)})

	assert.Equal(t, [][]string{{"Free"}, {"Paid"}}, rowKeys(agg))
	assert.Equal(t, []float64{2}, agg.Rows[0].Values)
}

func TestRatingDistributionBins(t *testing.T) {
	apps := []*models.App{
		app("a", "GAME", 0, 1, 1),
		app("b", "GAME", 4.0, 1, 1),
		app("c", "GAME", 4.1, 1, 1),
		app("d", "GAME", 5.0, 1, 1),
	}

	agg := RatingDistribution(apps, histogramBins)

	require.Len(t, agg.Rows, histogramBins)
	assert.Equal(t, []string{"0.00-0.25"}, agg.Rows[0].Keys)
	assert.Equal(t, []float64{1}, agg.Rows[0].Values)
	assert.Equal(t, []string{"4.00-4.25"}, agg.Rows[16].Keys)
	assert.Equal(t, []float64{2}, agg.Rows[16].Values)
	assert.Equal(t, []float64{1}, agg.Rows[19].Values)

	total := 0.0
	for _, r := range agg.Rows {
		total += r.Values[0]
	}
	assert.Equal(t, float64(len(apps)), total)
}

func TestSentimentDistribution(t *testing.T) {
	reviews := []*models.Review{
		review("a", models.SentimentNegative),
		review("a", models.SentimentPositive),
		review("b", models.SentimentPositive),
	}

	agg := SentimentDistribution(reviews)

	assert.Equal(t, [][]string{{models.SentimentPositive}, {models.SentimentNeutral}, {models.SentimentNegative}}, rowKeys(agg))
	assert.Equal(t, []float64{2}, agg.Rows[0].Values)
	assert.Equal(t, []float64{0}, agg.Rows[1].Values)
	assert.Equal(t, []float64{1}, agg.Rows[2].Values)
}

func TestUpdatesPerYearAndRatingVsLastUpdated(t *testing.T) {
	apps := []*models.App{
		dated(app("new", "GAME", 4.1, 1, 1), 2018, time.May, 1),
		dated(app("old", "GAME", 3.0, 1, 1), 2015, time.March, 2),
		app("undated", "GAME", 2.0, 1, 1),
		dated(app("mid", "GAME", 4.5, 1, 1), 2018, time.January, 9),
	}

	years := UpdatesPerYear(apps)
	assert.Equal(t, [][]string{{"2015"}, {"2018"}}, rowKeys(years))
	assert.Equal(t, []float64{2}, years.Rows[1].Values)

	scatter := RatingVsLastUpdated(apps)
	require.Len(t, scatter.Rows, 3)
	assert.Equal(t, []string{"old", "Free", "2015-03-02"}, scatter.Rows[0].Keys)
	assert.Equal(t, "mid", scatter.Rows[1].Keys[0])
	assert.Equal(t, []float64{4.1}, scatter.Rows[2].Values)
}

func TestTopGenresCountsEveryGenre(t *testing.T) {
	a := app("a", "FAMILY", 4, 1, 1)
	a.Genres = []string{"Casual", "Pretend Play"}
	b := app("b", "GAME", 4, 1, 1)
	b.Genres = []string{"Action"}
	c := app("c", "GAME", 4, 1, 1)
	c.Genres = []string{"Casual"}

	agg := TopGenres([]*models.App{a, b, c}, 10)

	assert.Equal(t, [][]string{{"Casual"}, {"Pretend Play"}, {"Action"}}, rowKeys(agg))
}

func TestRatingByType(t *testing.T) {
	paid := app("p", "TOOLS", 4.8, 1, 1)
	paid.Type = "Paid"
	apps := []*models.App{
		app("a", "GAME", 3.0, 1, 1),
		paid,
		app("b", "GAME", 5.0, 1, 1),
		app("c", "GAME", 4.0, 1, 1),
	}

	agg := RatingByType(apps)

	require.Len(t, agg.Rows, 2)
	free := agg.Rows[0]
	assert.Equal(t, []string{"Free"}, free.Keys)
	assert.Equal(t, 3.0, free.Values[0])
	assert.Equal(t, 4.0, free.Values[2])
	assert.Equal(t, 5.0, free.Values[4])
	assert.Equal(t, 3.0, free.Values[5])
	assert.LessOrEqual(t, free.Values[1], free.Values[2])
	assert.GreaterOrEqual(t, free.Values[3], free.Values[2])

	assert.Equal(t, []string{"Paid"}, agg.Rows[1].Keys)
	assert.Equal(t, 4.8, agg.Rows[1].Values[2])
}

func TestGenerateOrderAndGating(t *testing.T) {
	apps := []*models.App{app("a", "GAME", 4, 1, 1)}
	gates := map[string]GateStatus{
		AggInstallsByCountry: {Available: false, Notice: "closed"},
		AggSizeVsRating:      {Available: true},
	}

	aggs := NewInsightService(newTestLogger(), 3).Generate(apps, nil, gates)

	require.Len(t, aggs, len(aggregateOrder))
	for i, name := range aggregateOrder {
		assert.Equal(t, name, aggs[i].Name)
	}

	geo := aggs[len(aggs)-2]
	assert.True(t, geo.Gated)
	assert.False(t, geo.Available)
	assert.Equal(t, "closed", geo.Notice)
	assert.Empty(t, geo.Rows)

	bubble := aggs[len(aggs)-1]
	assert.True(t, bubble.Gated)
	assert.True(t, bubble.Available)

	assert.False(t, aggs[0].Gated)
	assert.Equal(t, [][]string{{"GAME"}}, rowKeys(aggs[0]))
}

func TestGenerateOnEmptyInput(t *testing.T) {
	aggs := NewInsightService(newTestLogger(), 1).Generate(nil, nil, nil)

	require.Len(t, aggs, len(aggregateOrder))
	for _, agg := range aggs {
		assert.True(t, agg.Available, agg.Name)
		assert.NotNil(t, agg.Rows, agg.Name)
		switch agg.Name {
		case AggRatingDistribution:
			assert.Len(t, agg.Rows, histogramBins)
		case AggSentimentDistribution:
			assert.Len(t, agg.Rows, len(models.SentimentLabels))
		default:
			assert.Empty(t, agg.Rows, agg.Name)
		}
	}
}
