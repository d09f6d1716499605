package models

// Column names of the review extract.
const (
	ColReviewApp  = "App"
	ColReviewText = "Translated_Review"
)

// Sentiment labels in their fixed presentation order.
const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"
)

// SentimentLabels is the column order of every sentiment pivot.
var SentimentLabels = []string{SentimentPositive, SentimentNeutral, SentimentNegative}

// Review is a cleaned review with its sentiment scores.
type Review struct {
	App          string
	Text         string
	Compound     float64
	Subjectivity float64
	Label        string
}
