// Command stormreport builds ranked harm summaries from a NOAA Storm Events
// CSV export: population-health harm by event type, economic harm by event
// type, and all harm measures by state, each pivoted into a long-form table
// for the rendering collaborator.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/storm-harm-report/internal/config"
	"github.com/couchcryptid/storm-harm-report/internal/observability"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "stormreport",
	Short: "Ranked harm summaries from the NOAA Storm Events database",
	Long: `Reads the NOAA Storm Events CSV export (plain, .gz, or .bz2), normalizes
it, and produces three ranked long-form tables: health harm by event type,
economic harm by event type, and harm by state.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		logger = observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
