package services

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/go-gota/gota/series"

	"playstore-analytics/models"
	"playstore-analytics/utils"
)

// Aggregate names, in the order Generate emits them.
const (
	AggTopCategories          = "top_categories"
	AggTypeDistribution       = "type_distribution"
	AggRatingDistribution     = "rating_distribution"
	AggSentimentDistribution  = "sentiment_distribution"
	AggInstallsByCategory     = "installs_by_category"
	AggUpdatesPerYear         = "updates_per_year"
	AggRevenueByCategory      = "revenue_by_category"
	AggTopGenres              = "top_genres"
	AggRatingVsLastUpdated    = "rating_vs_last_updated"
	AggRatingByType           = "rating_by_type"
	AggSentimentByRatingGroup = "sentiment_by_rating_group"
	AggInstallsByCountry      = "installs_by_country"
	AggSizeVsRating           = "size_vs_rating"
)

const (
	topN          = 10
	histogramBins = 20
)

type aggregateShape struct {
	title   string
	insight string
	keys    []string
	values  []string
	ranked  bool
}

// catalog fixes the tabular shape of every aggregate.
var catalog = map[string]aggregateShape{
	AggTopCategories: {
		title:   "Top Categories on Play Store",
		insight: "The top categories on the Play Store are dominated by tools, entertainment, and productivity.",
		keys:    []string{"category"}, values: []string{"count"}, ranked: true,
	},
	AggTypeDistribution: {
		title:   "App Type Distribution",
		insight: "Most apps on the Play Store are free, indicating a strategy to attract users first and monetize through ads or in-app purchases.",
		keys:    []string{"type"}, values: []string{"count"}, ranked: true,
	},
	AggRatingDistribution: {
		title:   "Rating Distribution",
		insight: "Ratings are skewed towards higher values, suggesting that most apps are rated favourably by users.",
		keys:    []string{"rating_bin"}, values: []string{"count"},
	},
	AggSentimentDistribution: {
		title:   "Sentiment Distribution",
		insight: "Sentiment in reviews shows a mix of positivity and negativity.",
		keys:    []string{"sentiment"}, values: []string{"count"},
	},
	AggInstallsByCategory: {
		title:   "Installs by Category",
		insight: "The categories with the most installs are social and communication apps, reflecting their broad appeal and daily usage.",
		keys:    []string{"category"}, values: []string{"installs"}, ranked: true,
	},
	AggUpdatesPerYear: {
		title:   "Number of Updates over the Years",
		insight: "Updates have been increasing over the years, showing that developers are actively maintaining and improving their apps.",
		keys:    []string{"year"}, values: []string{"count"},
	},
	AggRevenueByCategory: {
		title:   "Revenue by Category",
		insight: "Categories such as Business and Productivity lead in revenue generation, indicating their monetization potential.",
		keys:    []string{"category"}, values: []string{"revenue"}, ranked: true,
	},
	AggTopGenres: {
		title:   "Top Genres",
		insight: "Action and Casual genres are the most common, reflecting users' preference for engaging and easy-to-play games.",
		keys:    []string{"genre"}, values: []string{"count"}, ranked: true,
	},
	AggRatingVsLastUpdated: {
		title:   "Impact of Last Updated on Rating",
		insight: "There is a weak correlation between the last update and ratings, suggesting that more frequent updates don't always result in better ratings.",
		keys:    []string{"app", "type", "last_updated"}, values: []string{"rating"},
	},
	AggRatingByType: {
		title:   "Rating for Paid vs Free Apps",
		insight: "Paid apps generally have higher ratings compared to free apps, suggesting that users expect higher quality from apps they pay for.",
		keys:    []string{"type"}, values: []string{"min", "q1", "median", "q3", "max", "count"},
	},
	AggSentimentByRatingGroup: {
		title:   "Sentiment Distribution by Rating Group and Top 5 Categories",
		insight: "Review sentiment per rating group for the five most common categories among apps with more than 1,000 reviews.",
		keys:    []string{"category", "rating_group"}, values: models.SentimentLabels,
	},
	AggInstallsByCountry: {
		title:   "Global Installs by Category (Top 5, Excluding A/C/G/S)",
		insight: "Country and category pairs above 1,000,000 installs are highlighted.",
		keys:    []string{"country", "category"}, values: []string{"installs"},
	},
	AggSizeVsRating: {
		title:   "App Size vs. Average Rating (Bubble size = Installs)",
		insight: "Well rated, frequently installed apps with opinionated reviews, by size and category.",
		keys:    []string{"app", "category"}, values: []string{"size_mb", "rating", "installs", "subjectivity"},
	},
}

var aggregateOrder = []string{
	AggTopCategories, AggTypeDistribution, AggRatingDistribution, AggSentimentDistribution,
	AggInstallsByCategory, AggUpdatesPerYear, AggRevenueByCategory, AggTopGenres,
	AggRatingVsLastUpdated, AggRatingByType, AggSentimentByRatingGroup,
	AggInstallsByCountry, AggSizeVsRating,
}

func newAggregate(name string) models.Aggregate {
	shape := catalog[name]
	return models.Aggregate{
		Name:         name,
		Title:        shape.title,
		Insight:      shape.insight,
		KeyColumns:   shape.keys,
		ValueColumns: shape.values,
		Ranked:       shape.ranked,
		Rows:         []models.Row{},
		Available:    true,
	}
}

// InsightService computes the aggregate views over cleaned records.
type InsightService struct {
	logger  *utils.Logger
	workers int
}

// NewInsightService creates an InsightService that computes up to workers
// aggregates at a time.
func NewInsightService(logger *utils.Logger, workers int) *InsightService {
	return &InsightService{logger: logger, workers: workers}
}

// Generate computes every aggregate and returns them in a fixed order.
// apps and reviews are only read. Gated aggregates whose status is not
// available are returned as notices without being computed.
func (s *InsightService) Generate(apps []*models.App, reviews []*models.Review, gates map[string]GateStatus) []models.Aggregate {
	jobs := map[string]func() models.Aggregate{
		AggTopCategories:          func() models.Aggregate { return TopCategories(apps, topN) },
		AggTypeDistribution:       func() models.Aggregate { return TypeDistribution(apps) },
		AggRatingDistribution:     func() models.Aggregate { return RatingDistribution(apps, histogramBins) },
		AggSentimentDistribution:  func() models.Aggregate { return SentimentDistribution(reviews) },
		AggInstallsByCategory:     func() models.Aggregate { return InstallsByCategory(apps, topN) },
		AggUpdatesPerYear:         func() models.Aggregate { return UpdatesPerYear(apps) },
		AggRevenueByCategory:      func() models.Aggregate { return RevenueByCategory(apps, topN) },
		AggTopGenres:              func() models.Aggregate { return TopGenres(apps, topN) },
		AggRatingVsLastUpdated:    func() models.Aggregate { return RatingVsLastUpdated(apps) },
		AggRatingByType:           func() models.Aggregate { return RatingByType(apps) },
		AggSentimentByRatingGroup: func() models.Aggregate { return SentimentByRatingGroup(apps, reviews) },
		AggInstallsByCountry:      func() models.Aggregate { return InstallsByCountry(apps) },
		AggSizeVsRating:           func() models.Aggregate { return SizeVsRating(apps) },
	}

	out := make([]models.Aggregate, len(aggregateOrder))
	pool := utils.NewWorkerPool(s.workers)

	for i, name := range aggregateOrder {
		job := jobs[name]
		status, gated := gates[name]
		if gated && !status.Available {
			agg := newAggregate(name)
			agg.Gated = true
			agg.Available = false
			agg.Notice = status.Notice
			out[i] = agg
			s.logger.Info("[insights] %s skipped: %s", name, status.Notice)
			continue
		}

		i, job, gated := i, job, gated
		pool.Submit(func() {
			agg := job()
			agg.Gated = gated
			out[i] = agg
		})
	}
	pool.Wait()

	for _, agg := range out {
		s.logger.Debug("[insights] %s: %d rows", agg.Name, len(agg.Rows))
	}
	return out
}

// TopCategories ranks categories by app count.
func TopCategories(apps []*models.App, n int) models.Aggregate {
	t := newTally()
	for _, a := range apps {
		t.add(a.Category, 1)
	}
	return t.fill(newAggregate(AggTopCategories), n)
}

// TypeDistribution counts apps per type, largest first.
func TypeDistribution(apps []*models.App) models.Aggregate {
	t := newTally()
	for _, a := range apps {
		t.add(a.Type, 1)
	}
	return t.fill(newAggregate(AggTypeDistribution), 0)
}

// RatingDistribution counts ratings in bins equal-width bins over [0, 5].
// Every bin is emitted, empty ones with a zero count.
func RatingDistribution(apps []*models.App, bins int) models.Aggregate {
	agg := newAggregate(AggRatingDistribution)
	if bins < 1 {
		return agg
	}
	width := maxRating / float64(bins)
	counts := make([]float64, bins)
	for _, a := range apps {
		idx := int(a.Rating / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		counts[idx]++
	}
	for i, c := range counts {
		lo := float64(i) * width
		label := fmt.Sprintf("%.2f-%.2f", lo, lo+width)
		agg.Rows = append(agg.Rows, models.Row{Keys: []string{label}, Values: []float64{c}})
	}
	return agg
}

// SentimentDistribution counts reviews per sentiment label, in label order.
func SentimentDistribution(reviews []*models.Review) models.Aggregate {
	agg := newAggregate(AggSentimentDistribution)
	counts := make(map[string]float64, len(models.SentimentLabels))
	for _, r := range reviews {
		counts[r.Label]++
	}
	for _, label := range models.SentimentLabels {
		agg.Rows = append(agg.Rows, models.Row{Keys: []string{label}, Values: []float64{counts[label]}})
	}
	return agg
}

// InstallsByCategory ranks categories by summed installs.
func InstallsByCategory(apps []*models.App, n int) models.Aggregate {
	t := newTally()
	for _, a := range apps {
		t.add(a.Category, float64(a.Installs))
	}
	return t.fill(newAggregate(AggInstallsByCategory), n)
}

// RevenueByCategory ranks categories by summed revenue estimate.
func RevenueByCategory(apps []*models.App, n int) models.Aggregate {
	t := newTally()
	for _, a := range apps {
		t.add(a.Category, a.Revenue)
	}
	return t.fill(newAggregate(AggRevenueByCategory), n)
}

// UpdatesPerYear counts apps by the year of their last update, oldest
// first. Apps without a parsed date are skipped.
func UpdatesPerYear(apps []*models.App) models.Aggregate {
	agg := newAggregate(AggUpdatesPerYear)
	counts := make(map[int]float64)
	for _, a := range apps {
		if a.LastUpdated == nil {
			continue
		}
		counts[a.LastUpdated.Year()]++
	}

	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	for _, y := range years {
		agg.Rows = append(agg.Rows, models.Row{Keys: []string{strconv.Itoa(y)}, Values: []float64{counts[y]}})
	}
	return agg
}

// TopGenres ranks genres by occurrence; an app listing several genres
// counts once for each.
func TopGenres(apps []*models.App, n int) models.Aggregate {
	t := newTally()
	for _, a := range apps {
		for _, g := range a.Genres {
			t.add(g, 1)
		}
	}
	return t.fill(newAggregate(AggTopGenres), n)
}

// RatingVsLastUpdated lists every dated app with its rating, oldest first.
func RatingVsLastUpdated(apps []*models.App) models.Aggregate {
	agg := newAggregate(AggRatingVsLastUpdated)
	dated := make([]*models.App, 0, len(apps))
	for _, a := range apps {
		if a.LastUpdated != nil {
			dated = append(dated, a)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].LastUpdated.Before(*dated[j].LastUpdated)
	})
	for _, a := range dated {
		agg.Rows = append(agg.Rows, models.Row{
			Keys:   []string{a.Name, a.Type, a.LastUpdated.Format("2006-01-02")},
			Values: []float64{a.Rating},
		})
	}
	return agg
}

// RatingByType summarises the rating distribution of each app type as
// box-plot statistics. Quantiles are empirical.
func RatingByType(apps []*models.App) models.Aggregate {
	agg := newAggregate(AggRatingByType)
	var order []string
	ratings := make(map[string][]float64)
	for _, a := range apps {
		if _, ok := ratings[a.Type]; !ok {
			order = append(order, a.Type)
		}
		ratings[a.Type] = append(ratings[a.Type], a.Rating)
	}

	for _, typ := range order {
		s := series.Floats(ratings[typ])
		agg.Rows = append(agg.Rows, models.Row{
			Keys: []string{typ},
			Values: []float64{
				s.Min(), s.Quantile(0.25), s.Quantile(0.5), s.Quantile(0.75), s.Max(),
				float64(s.Len()),
			},
		})
	}
	return agg
}

// tally accumulates a value per key, remembering first-appearance order so
// that rankings break ties by input order.
type tally struct {
	order  []string
	values map[string]float64
}

func newTally() *tally {
	return &tally{values: make(map[string]float64)}
}

func (t *tally) add(key string, v float64) {
	if _, ok := t.values[key]; !ok {
		t.order = append(t.order, key)
	}
	t.values[key] += v
}

// top returns up to n keys by descending value; n <= 0 returns all.
func (t *tally) top(n int) []string {
	keys := append([]string(nil), t.order...)
	sort.SliceStable(keys, func(i, j int) bool {
		return t.values[keys[i]] > t.values[keys[j]]
	})
	if n > 0 && len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

func (t *tally) fill(agg models.Aggregate, n int) models.Aggregate {
	for _, k := range t.top(n) {
		agg.Rows = append(agg.Rows, models.Row{Keys: []string{k}, Values: []float64{t.values[k]}})
	}
	return agg
}
