package services

import (
	"math"

	"playstore-analytics/models"
)

// Deriver computes the derived columns of each App.
type Deriver struct{}

// NewDeriver creates a Deriver.
func NewDeriver() *Deriver {
	return &Deriver{}
}

// Derive fills LogInstalls, LogReviews, Tier and Revenue in place. It only
// reads source fields, so running it twice gives the same result.
func (d *Deriver) Derive(apps []*models.App) {
	for _, a := range apps {
		a.LogInstalls = math.Log1p(float64(a.Installs))
		a.LogReviews = math.Log1p(float64(a.Reviews))
		a.Tier = RatingTier(a.Rating)
		a.Revenue = a.Price * float64(a.Installs)
	}
}

// RatingTier is the 4-band classification of a rating.
func RatingTier(rating float64) string {
	switch {
	case rating >= 4:
		return models.TierTopRated
	case rating >= 3:
		return models.TierAboveAverage
	case rating >= 2:
		return models.TierAverage
	default:
		return models.TierBelowAverage
	}
}

// RatingGroup is the coarser 3-band classification used by the segmented
// sentiment view, separate from RatingTier.
func RatingGroup(rating float64) string {
	switch {
	case rating >= 4:
		return models.GroupFourToFive
	case rating >= 3:
		return models.GroupThreeToFour
	default:
		return models.GroupOneToTwo
	}
}

// ratingGroupOrder is the presentation order of RatingGroup values.
var ratingGroupOrder = []string{models.GroupFourToFive, models.GroupThreeToFour, models.GroupOneToTwo}
