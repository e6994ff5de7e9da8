package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/storm-harm-report/internal/domain"
	"github.com/couchcryptid/storm-harm-report/internal/observability"
)

// DatasetTransformer implements Transformer using the domain normalization
// functions, reporting data-quality findings through logs and metrics.
type DatasetTransformer struct {
	excludeStateIDs []int
	logger          *slog.Logger
	metrics         *observability.Metrics
}

// NewTransformer creates a DatasetTransformer with the configured state id
// denylist.
func NewTransformer(excludeStateIDs []int, logger *slog.Logger, metrics *observability.Metrics) *DatasetTransformer {
	return &DatasetTransformer{
		excludeStateIDs: excludeStateIDs,
		logger:          logger,
		metrics:         metrics,
	}
}

// Transform normalizes the raw table. Unrecognized magnitude codes are
// non-fatal: each distinct code is logged once with its occurrence count —
// per-row logging over the full export would drown the log — and every
// affected row increments the per-column warning counter.
func (t *DatasetTransformer) Transform(_ context.Context, table *domain.Table) (*domain.Dataset, error) {
	ds, err := domain.Normalize(table, t.excludeStateIDs)
	if err != nil {
		return nil, err
	}

	for column, codes := range ds.Quality.BadMagnitudeCodes {
		for code, count := range codes {
			t.logger.Warn("unrecognized magnitude code, scale factor defaulted to 1",
				"column", column, "code", code, "rows", count)
			t.metrics.MagnitudeCodeWarnings.WithLabelValues(column).Add(float64(count))
		}
	}

	return ds, nil
}

// HarmSummarizer implements Summarizer with the three independent group-bys.
type HarmSummarizer struct{}

// NewSummarizer creates a HarmSummarizer.
func NewSummarizer() *HarmSummarizer { return &HarmSummarizer{} }

func (s *HarmSummarizer) Summarize(_ context.Context, ds *domain.Dataset) (domain.Summaries, error) {
	return domain.Summaries{
		Health:   domain.SummarizeHealth(ds.Records),
		Economic: domain.SummarizeEconomic(ds.Records),
		States:   domain.SummarizeStates(ds.Records, ds.StateAliases, ds.StateNames),
	}, nil
}

// ReportReshaper implements Reshaper: top-N truncation for the event
// summaries, full retention for the state summary, long-form pivot for all
// three.
type ReportReshaper struct {
	topN int
}

// NewReshaper creates a ReportReshaper keeping the top n event types.
func NewReshaper(n int) *ReportReshaper { return &ReportReshaper{topN: n} }

func (r *ReportReshaper) Reshape(_ context.Context, s domain.Summaries) ([]domain.Report, error) {
	return []domain.Report{
		domain.BuildHealthReport(s.Health, r.topN),
		domain.BuildEconomicReport(s.Economic, r.topN),
		domain.BuildStateReport(s.States),
	}, nil
}
