package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"playstore-analytics/config"
	"playstore-analytics/metrics"
	"playstore-analytics/services"
	"playstore-analytics/storage"
	"playstore-analytics/utils"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full analytics pipeline",
	Long: `Loads both extracts, cleans and scores them, computes every aggregate,
prints a summary and writes the aggregates to the configured sinks.

Sinks:
- csv:      one file per aggregate in --out, plus gates.csv
- sqlite:   aggregate_runs / aggregate_buckets / aggregate_gates in --sqlite
- postgres: the same tables in POSTGRES_* database

Example:
  playstore-analytics run --sinks csv,sqlite --out ./output`,
	RunE: runPipeline,
}

var (
	runApps        string
	runReviews     string
	runOut         string
	runSinks       []string
	runSQLite      string
	runTimezone    string
	runWorkers     int
	runMetricsFile string
	runQuiet       bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runApps, "apps", "", "application extract CSV (APPS_CSV)")
	runCmd.Flags().StringVar(&runReviews, "reviews", "", "review extract CSV (REVIEWS_CSV)")
	runCmd.Flags().StringVar(&runOut, "out", "", "CSV output directory (OUTPUT_DIR)")
	runCmd.Flags().StringSliceVar(&runSinks, "sinks", nil, "output sinks: csv, sqlite, postgres (OUTPUT_SINKS)")
	runCmd.Flags().StringVar(&runSQLite, "sqlite", "", "SQLite database path (SQLITE_PATH)")
	runCmd.Flags().StringVar(&runTimezone, "timezone", "", "IANA zone of the gate windows (GATE_TIMEZONE)")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "aggregates computed in parallel (MAX_CONCURRENCY)")
	runCmd.Flags().StringVar(&runMetricsFile, "metrics-textfile", "", "write Prometheus metrics here (METRICS_TEXTFILE)")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "skip the terminal summary")
}

func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("apps") {
		cfg.AppsCSVPath = runApps
	}
	if flags.Changed("reviews") {
		cfg.ReviewsCSVPath = runReviews
	}
	if flags.Changed("out") {
		cfg.OutputDir = runOut
	}
	if flags.Changed("sinks") {
		cfg.OutputSinks = runSinks
	}
	if flags.Changed("sqlite") {
		cfg.SQLitePath = runSQLite
	}
	if flags.Changed("timezone") {
		cfg.GateTimezone = runTimezone
	}
	if flags.Changed("workers") {
		cfg.MaxConcurrency = runWorkers
	}
	if flags.Changed("metrics-textfile") {
		cfg.MetricsTextfile = runMetricsFile
	}
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	applyRunFlags(cmd, cfg)

	logger := utils.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	logger.Info("=== Play Store analytics starting ===")
	logger.Info("Config: apps %q | reviews %q | sinks %v | workers %d | gate zone %s",
		cfg.AppsCSVPath, cfg.ReviewsCSVPath, cfg.OutputSinks, cfg.MaxConcurrency, cfg.GateTimezone)

	writers, err := openWriters(cfg, logger)
	if err != nil {
		logger.Error("Failed to open output sinks: %v", err)
		return err
	}
	defer func() {
		for _, w := range writers {
			if err := w.Close(); err != nil {
				logger.Warn("Closing %s sink: %v", w.name, err)
			}
		}
	}()

	recorder := metrics.NewRecorder()
	pipeline := services.NewPipeline(cfg, logger, services.WithMetrics(recorder))

	report, err := pipeline.Run(cmd.Context())
	if err != nil {
		logger.Error("Pipeline failed: %v", err)
		return err
	}
	if report.Stats.AppsKept == 0 {
		logger.Error("All applications were dropped during cleaning. Exiting.")
		return services.ErrEmptyDataset
	}

	if !runQuiet {
		services.PrintReport(cmd.OutOrStdout(), report)
	}

	var failed int
	for _, w := range writers {
		if err := w.Write(report); err != nil {
			logger.Error("%s write failed: %v", w.name, err)
			failed++
			continue
		}
		logger.Info("Aggregates stored via %s sink", w.name)
	}

	if cfg.MetricsTextfile != "" {
		if err := recorder.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Warn("Metrics textfile not written: %v", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d sinks failed", failed, len(writers))
	}
	logger.Info("Done. Run %s", report.RunID)
	return nil
}

type namedWriter struct {
	name string
	storage.AggregateWriter
}

// openWriters opens every configured sink in order. Already opened sinks
// are closed when a later one fails.
func openWriters(cfg *config.Config, logger *utils.Logger) ([]namedWriter, error) {
	var writers []namedWriter
	seen := make(map[string]bool, len(cfg.OutputSinks))

	for _, sink := range cfg.OutputSinks {
		if seen[sink] {
			continue
		}
		seen[sink] = true

		var (
			w   storage.AggregateWriter
			err error
		)
		switch sink {
		case "csv":
			w, err = storage.NewCSVWriter(cfg.OutputDir)
		case "sqlite":
			w, err = storage.NewSQLiteWriter(cfg.SQLitePath)
		case "postgres":
			w, err = storage.NewPostgresWriter(cfg.DSN(), cfg.MaxRetries, logger)
		default:
			err = fmt.Errorf("unknown sink %q", sink)
		}
		if err != nil {
			for _, opened := range writers {
				opened.Close()
			}
			return nil, err
		}
		writers = append(writers, namedWriter{name: sink, AggregateWriter: w})
	}

	if len(writers) == 0 {
		logger.Warn("No output sinks configured; results are only printed")
	}
	return writers, nil
}
