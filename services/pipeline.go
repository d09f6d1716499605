package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"playstore-analytics/config"
	"playstore-analytics/metrics"
	"playstore-analytics/models"
	"playstore-analytics/sentiment"
	"playstore-analytics/utils"
)

// Pipeline runs one batch: load, clean, derive, score, gate and aggregate.
type Pipeline struct {
	cfg     *config.Config
	logger  *utils.Logger
	metrics *metrics.Recorder
	clock   Clock

	polarity     sentiment.Scorer
	subjectivity sentiment.Scorer

	loader  *Loader
	cleaner *Cleaner
	deriver *Deriver
	gates   []*Gate
}

// Option customises a Pipeline.
type Option func(*Pipeline)

// WithClock replaces the wall clock used by the time gates.
func WithClock(c Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// WithScorers replaces the sentiment models.
func WithScorers(polarity, subjectivity sentiment.Scorer) Option {
	return func(p *Pipeline) {
		p.polarity = polarity
		p.subjectivity = subjectivity
	}
}

// WithMetrics records run metrics into r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(p *Pipeline) { p.metrics = r }
}

// NewPipeline wires a Pipeline from configuration.
func NewPipeline(cfg *config.Config, logger *utils.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:          cfg,
		logger:       logger,
		clock:        SystemClock,
		polarity:     sentiment.NewVader(),
		subjectivity: sentiment.NewSubjectivity(),
		loader:       NewLoader(logger, cfg.DefaultCountry),
		cleaner:      NewCleaner(logger),
		deriver:      NewDeriver(),
		gates:        []*Gate{GeoGate(cfg.GateTimezone), BubbleGate(cfg.GateTimezone)},
	}
	for _, opt := range opts {
		opt(p)
	}
	for _, g := range p.gates {
		if err := g.Err(); err != nil {
			logger.Warn("[pipeline] Gate for %s will stay closed: %v", g.Name(), err)
		}
	}
	return p
}

// Run reads both extracts from the configured paths and processes them.
func (p *Pipeline) Run(ctx context.Context) (*models.Report, error) {
	start := time.Now()
	apps, err := p.loader.LoadAppsFile(p.cfg.AppsCSVPath)
	if err != nil {
		return nil, err
	}
	reviews, err := p.loader.LoadReviewsFile(p.cfg.ReviewsCSVPath)
	if err != nil {
		return nil, err
	}
	p.stage(p.logger, "load", start)
	return p.Process(ctx, apps, reviews)
}

// RunReaders is Run over in-memory extracts.
func (p *Pipeline) RunReaders(ctx context.Context, appsCSV, reviewsCSV io.Reader) (*models.Report, error) {
	apps, err := p.loader.LoadApps(appsCSV)
	if err != nil {
		return nil, err
	}
	reviews, err := p.loader.LoadReviews(reviewsCSV)
	if err != nil {
		return nil, err
	}
	return p.Process(ctx, apps, reviews)
}

// Process runs every stage after loading. Records are not modified once
// aggregation starts.
func (p *Pipeline) Process(ctx context.Context, appsTable, reviewsTable *models.RawTable) (*models.Report, error) {
	report := &models.Report{RunID: uuid.NewString()}
	log := p.logger.With("run_id", report.RunID)

	start := time.Now()
	apps := p.cleaner.Refine(p.cleaner.CleanApps(appsTable, &report.Stats))
	reviews := p.cleaner.CleanReviews(reviewsTable, &report.Stats)
	p.recordCleaning(report.Stats)
	p.stage(log, "clean", start)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	start = time.Now()
	p.deriver.Derive(apps)
	p.stage(log, "derive", start)

	scoring := NewScoringService(p.polarity, p.subjectivity, log)
	start = time.Now()
	scoring.ScorePolarity(reviews)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	statuses := p.CheckGates()
	// Subjectivity only feeds the bubble view.
	if statuses[AggSizeVsRating].Available {
		scoring.AttachSubjectivity(apps, reviews)
	}
	p.stage(log, "score", start)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	start = time.Now()
	insights := NewInsightService(log, p.cfg.MaxConcurrency)
	report.Aggregates = insights.Generate(apps, reviews, statuses)
	p.stage(log, "aggregate", start)

	report.GeneratedAt = p.clock.Now()
	for _, agg := range report.Aggregates {
		p.metrics.Aggregate(agg.Name, len(agg.Rows))
	}
	p.metrics.Completed(report.GeneratedAt)

	log.Info("[pipeline] Run complete: %d apps, %d reviews, %d aggregates",
		len(apps), len(reviews), len(report.Aggregates))
	return report, nil
}

// CheckGates evaluates every gate, reading the clock once per gate.
func (p *Pipeline) CheckGates() map[string]GateStatus {
	statuses := make(map[string]GateStatus, len(p.gates))
	for _, g := range p.gates {
		st := g.Check(p.clock)
		statuses[g.Name()] = st
		p.metrics.Gate(g.Name(), st.Available)
	}
	return statuses
}

func (p *Pipeline) stage(log *utils.Logger, name string, start time.Time) {
	log.Elapsed(name, start)
	p.metrics.Stage(name, start)
}

func (p *Pipeline) recordCleaning(s models.CleaningStats) {
	p.metrics.Read(DatasetApps, s.AppsRead)
	p.metrics.Read(DatasetReviews, s.ReviewsRead)
	p.metrics.Dropped(DatasetApps, "missing_rating", s.AppsMissingRating)
	p.metrics.Dropped(DatasetApps, "duplicate", s.AppsDuplicate)
	p.metrics.Dropped(DatasetApps, "unparsable", s.AppsUnparsable)
	p.metrics.Dropped(DatasetApps, "out_of_range", s.AppsOutOfRange)
	p.metrics.Dropped(DatasetReviews, "missing_text", s.ReviewsMissingText)
}
