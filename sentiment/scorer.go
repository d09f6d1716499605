// Package sentiment scores short informal text. Models are plain
// text -> bounded float functions behind the Scorer interface so the pipeline
// can swap them out in tests.
package sentiment

import (
	"playstore-analytics/models"
)

const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Scorer maps a text to a bounded score. Implementations must be
// deterministic for a given text.
type Scorer interface {
	Score(text string) float64
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(text string) float64

// Score calls f(text).
func (f ScorerFunc) Score(text string) float64 { return f(text) }

// Label classifies a compound score. Both thresholds are inclusive toward
// the polar labels.
func Label(compound float64) string {
	switch {
	case compound >= positiveThreshold:
		return models.SentimentPositive
	case compound <= negativeThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
