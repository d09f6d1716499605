package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"playstore-analytics/config"
)

var (
	// Global flags
	envFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "playstore-analytics",
	Short: "Play Store apps and reviews analytics",
	Long: `Play Store Analytics CLI

Cleans the Play Store application and review extracts, scores review
sentiment and computes the dashboard aggregates.

Examples:
  playstore-analytics run
  playstore-analytics run --apps data/apps.csv --reviews data/reviews.csv --sinks csv,sqlite
  playstore-analytics gate --at 2024-03-01T18:30:00+05:30`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it until the
// command returns or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// loadConfig reads configuration, honouring --env-file and --verbose.
func loadConfig() *config.Config {
	var cfg *config.Config
	if envFile != "" {
		cfg = config.Load(envFile)
	} else {
		cfg = config.Load()
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg
}
