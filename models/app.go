package models

import "time"

// Column names of the application extract.
const (
	ColApp           = "App"
	ColCategory      = "Category"
	ColRating        = "Rating"
	ColReviews       = "Reviews"
	ColSize          = "Size"
	ColInstalls      = "Installs"
	ColType          = "Type"
	ColPrice         = "Price"
	ColContentRating = "Content Rating"
	ColGenres        = "Genres"
	ColLastUpdated   = "Last Updated"
	ColCurrentVer    = "Current Ver"
	ColAndroidVer    = "Android Ver"
	ColCountry       = "Country"
)

// Rating tiers, the 4-band classification attached to every App.
const (
	TierTopRated     = "Top rated"
	TierAboveAverage = "Above average"
	TierAverage      = "Average"
	TierBelowAverage = "Below average"
)

// Rating groups, the 3-band classification used only by the segmented
// sentiment aggregate.
const (
	GroupFourToFive  = "4-5 stars"
	GroupThreeToFour = "3-4 stars"
	GroupOneToTwo    = "1-2 stars"
)

// App is a cleaned, typed application record.
type App struct {
	Name          string
	Category      string
	Rating        float64
	Reviews       int64
	SizeMB        *float64
	Installs      int64
	Type          string
	Price         float64
	ContentRating string
	Genres        []string
	LastUpdated   *time.Time
	CurrentVer    string
	AndroidVer    string
	Country       string

	// Derived
	LogInstalls  float64
	LogReviews   float64
	Tier         string
	Revenue      float64
	Subjectivity *float64
}
