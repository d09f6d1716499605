package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"playstore-analytics/services"
)

// gateCmd represents the gate command
var gateCmd = &cobra.Command{
	Use:   "gate",
	Short: "Show whether the time-gated views are visible",
	Long: `Evaluates the geographic and bubble view windows for the current time,
or for the instant given with --at (RFC 3339).

Example:
  playstore-analytics gate
  playstore-analytics gate --at 2024-03-01T18:30:00+05:30`,
	RunE: runGate,
}

var (
	gateAt       string
	gateTimezone string
)

func init() {
	rootCmd.AddCommand(gateCmd)

	gateCmd.Flags().StringVar(&gateAt, "at", "", "evaluate at this RFC 3339 time instead of now")
	gateCmd.Flags().StringVar(&gateTimezone, "timezone", "", "IANA zone of the gate windows (GATE_TIMEZONE)")
}

func runGate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if cmd.Flags().Changed("timezone") {
		cfg.GateTimezone = gateTimezone
	}

	clock := services.SystemClock
	if gateAt != "" {
		at, err := time.Parse(time.RFC3339, gateAt)
		if err != nil {
			return fmt.Errorf("--at: %w", err)
		}
		clock = services.ClockFunc(func() time.Time { return at })
	}

	out := cmd.OutOrStdout()
	for _, g := range []*services.Gate{services.GeoGate(cfg.GateTimezone), services.BubbleGate(cfg.GateTimezone)} {
		st := g.Check(clock)
		if st.Available {
			fmt.Fprintf(out, "  \033[1;32m●\033[0m %-22s open   (%s)\n", g.Name(), st.CheckedAt.Format("15:04 MST"))
			continue
		}
		fmt.Fprintf(out, "  \033[1;31m●\033[0m %-22s closed %s\n", g.Name(), st.Notice)
	}
	return nil
}
