package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/storm-harm-report/internal/adapter/csvfile"
	"github.com/couchcryptid/storm-harm-report/internal/adapter/render"
	"github.com/couchcryptid/storm-harm-report/internal/observability"
	"github.com/couchcryptid/storm-harm-report/internal/pipeline"
)

var (
	reportOutDir string
	reportFormat string
	reportTopN   int
)

var reportCmd = &cobra.Command{
	Use:   "report <input.csv[.gz|.bz2]>",
	Short: "Run the full pipeline and render the three harm reports",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("out") {
			cfg.OutputDir = reportOutDir
		}
		if cmd.Flags().Changed("format") {
			cfg.OutputFormat = reportFormat
		}
		if cmd.Flags().Changed("top") {
			cfg.TopN = reportTopN
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		metrics := observability.NewMetrics()

		p := pipeline.New(
			csvfile.NewReader(args[0], cfg.CommaRune(), logger),
			pipeline.NewTransformer(cfg.ExcludeStateIDs, logger, metrics),
			pipeline.NewSummarizer(),
			pipeline.NewReshaper(cfg.TopN),
			render.New(os.Stdout, cfg.OutputDir, cfg.OutputFormat, logger),
			logger,
			metrics,
		)

		if err := p.Run(cmd.Context()); err != nil {
			return err
		}
		metrics.LogSummary(logger)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportOutDir, "out", "", "directory for report files (empty: terminal only)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "csv", "report file format: csv or json")
	reportCmd.Flags().IntVar(&reportTopN, "top", 20, "event types kept per event summary")
	rootCmd.AddCommand(reportCmd)
}
