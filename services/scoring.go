package services

import (
	"playstore-analytics/models"
	"playstore-analytics/sentiment"
	"playstore-analytics/utils"
)

// ScoringService attaches sentiment scores to reviews and per-app mean
// subjectivity to apps.
type ScoringService struct {
	polarity     sentiment.Scorer
	subjectivity sentiment.Scorer
	logger       *utils.Logger
}

// NewScoringService creates a ScoringService over the given models.
func NewScoringService(polarity, subjectivity sentiment.Scorer, logger *utils.Logger) *ScoringService {
	return &ScoringService{polarity: polarity, subjectivity: subjectivity, logger: logger}
}

// ScorePolarity sets Compound and Label on every review.
func (s *ScoringService) ScorePolarity(reviews []*models.Review) {
	for _, r := range reviews {
		r.Compound = s.polarity.Score(r.Text)
		r.Label = sentiment.Label(r.Compound)
	}
	s.logger.Debug("[scoring] Scored polarity of %d reviews", len(reviews))
}

// AttachSubjectivity scores every review's subjectivity, averages it per
// app name and left-joins the mean onto apps. Apps without reviews keep a
// nil Subjectivity.
func (s *ScoringService) AttachSubjectivity(apps []*models.App, reviews []*models.Review) {
	type acc struct {
		sum float64
		n   int
	}
	byApp := make(map[string]*acc)

	for _, r := range reviews {
		r.Subjectivity = s.subjectivity.Score(r.Text)
		a, ok := byApp[r.App]
		if !ok {
			a = &acc{}
			byApp[r.App] = a
		}
		a.sum += r.Subjectivity
		a.n++
	}

	joined := 0
	for _, app := range apps {
		a, ok := byApp[app.Name]
		if !ok {
			app.Subjectivity = nil
			continue
		}
		mean := a.sum / float64(a.n)
		app.Subjectivity = &mean
		joined++
	}
	s.logger.Debug("[scoring] Attached mean subjectivity to %d/%d apps", joined, len(apps))
}
