package services

import (
	"math"
	"sort"
	"strings"

	"playstore-analytics/models"
)

const (
	segmentMinReviews  = 1000
	segmentTopN        = 5
	countryTopN        = 5
	highlightInstalls  = 1_000_000
	bubbleMinRating    = 3.5
	bubbleMinReviews   = 500
	bubbleMinSubj      = 0.5
	bubbleMinInstalls  = 50_000
	bubbleHighlightCat = "GAME"
)

// blockedInitials excludes categories from the geographic view by first letter.
var blockedInitials = []string{"A", "C", "G", "S"}

// bubbleCategories is matched against the upper-cased category. "EVENT" is
// kept literally even though the extract spells it "EVENTS".
var bubbleCategories = map[string]struct{}{
	"GAME": {}, "BEAUTY": {}, "BUSINESS": {}, "COMICS": {}, "COMMUNICATION": {},
	"DATING": {}, "ENTERTAINMENT": {}, "SOCIAL": {}, "EVENT": {},
}

// categoryAliases are the display labels of a few categories in the bubble view.
var categoryAliases = map[string]string{
	"BEAUTY":   "सौंदर्य",
	"BUSINESS": "வணிகம்",
	"DATING":   "Dating",
}

// SentimentByRatingGroup joins well-reviewed apps from the five most common
// categories to their reviews and counts sentiment labels per (category,
// rating group). Every present key gets all three label columns, absent
// labels as 0. Rows follow category rank, then rating group order.
func SentimentByRatingGroup(apps []*models.App, reviews []*models.Review) models.Aggregate {
	agg := newAggregate(AggSentimentByRatingGroup)

	var popular []*models.App
	t := newTally()
	for _, a := range apps {
		if a.Reviews > segmentMinReviews {
			popular = append(popular, a)
			t.add(a.Category, 1)
		}
	}
	topCategories := t.top(segmentTopN)
	inTop := make(map[string]bool, len(topCategories))
	for _, c := range topCategories {
		inTop[c] = true
	}

	byApp := make(map[string][]*models.Review)
	for _, r := range reviews {
		byApp[r.App] = append(byApp[r.App], r)
	}

	labelIndex := make(map[string]int, len(models.SentimentLabels))
	for i, l := range models.SentimentLabels {
		labelIndex[l] = i
	}

	type segment struct{ category, group string }
	counts := make(map[segment][]float64)

	for _, a := range popular {
		if !inTop[a.Category] {
			continue
		}
		key := segment{a.Category, RatingGroup(a.Rating)}
		for _, r := range byApp[a.Name] {
			idx, ok := labelIndex[r.Label]
			if !ok {
				continue
			}
			if counts[key] == nil {
				counts[key] = make([]float64, len(models.SentimentLabels))
			}
			counts[key][idx]++
		}
	}

	for _, cat := range topCategories {
		for _, group := range ratingGroupOrder {
			values, ok := counts[segment{cat, group}]
			if !ok {
				continue
			}
			agg.Rows = append(agg.Rows, models.Row{Keys: []string{cat, group}, Values: values})
		}
	}
	return agg
}

// InstallsByCountry sums installs per (country, category) over the five
// largest categories by installs whose names do not start with a blocked
// letter. Pairs above one million installs are flagged. Rows are sorted by
// country, then category.
func InstallsByCountry(apps []*models.App) models.Aggregate {
	agg := newAggregate(AggInstallsByCountry)

	t := newTally()
	var eligible []*models.App
	for _, a := range apps {
		if hasBlockedInitial(a.Category) {
			continue
		}
		eligible = append(eligible, a)
		t.add(a.Category, float64(a.Installs))
	}

	top := make(map[string]bool, countryTopN)
	for _, c := range t.top(countryTopN) {
		top[c] = true
	}

	type pair struct{ country, category string }
	sums := make(map[pair]float64)
	var pairs []pair
	for _, a := range eligible {
		if !top[a.Category] {
			continue
		}
		p := pair{a.Country, a.Category}
		if _, ok := sums[p]; !ok {
			pairs = append(pairs, p)
		}
		sums[p] += float64(a.Installs)
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].country != pairs[j].country {
			return pairs[i].country < pairs[j].country
		}
		return pairs[i].category < pairs[j].category
	})

	for _, p := range pairs {
		agg.Rows = append(agg.Rows, models.Row{
			Keys:    []string{p.country, p.category},
			Values:  []float64{sums[p]},
			Flagged: sums[p] > highlightInstalls,
		})
	}
	return agg
}

// SizeVsRating selects apps for the bubble view. All predicates must hold:
// rating above 3.5, an allow-listed category, more than 500 reviews, no
// letter "s" in the name, mean review subjectivity above 0.5 and more than
// 50,000 installs. Apps of unknown size report NaN. GAME rows are flagged.
func SizeVsRating(apps []*models.App) models.Aggregate {
	agg := newAggregate(AggSizeVsRating)

	for _, a := range apps {
		if !bubbleEligible(a) {
			continue
		}
		size := math.NaN()
		if a.SizeMB != nil {
			size = *a.SizeMB
		}
		upper := strings.ToUpper(a.Category)
		agg.Rows = append(agg.Rows, models.Row{
			Keys:    []string{a.Name, DisplayCategory(a.Category)},
			Values:  []float64{size, a.Rating, float64(a.Installs), *a.Subjectivity},
			Flagged: upper == bubbleHighlightCat,
		})
	}
	return agg
}

func bubbleEligible(a *models.App) bool {
	if _, ok := bubbleCategories[strings.ToUpper(a.Category)]; !ok {
		return false
	}
	return a.Rating > bubbleMinRating &&
		a.Reviews > bubbleMinReviews &&
		!strings.ContainsAny(a.Name, "sS") &&
		a.Subjectivity != nil && *a.Subjectivity > bubbleMinSubj &&
		a.Installs > bubbleMinInstalls
}

// DisplayCategory returns the display alias of a category, or the category
// itself.
func DisplayCategory(category string) string {
	if alias, ok := categoryAliases[strings.ToUpper(category)]; ok {
		return alias
	}
	return category
}

func hasBlockedInitial(category string) bool {
	for _, prefix := range blockedInitials {
		if strings.HasPrefix(category, prefix) {
			return true
		}
	}
	return false
}
