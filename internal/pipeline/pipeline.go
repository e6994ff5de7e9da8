package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/storm-harm-report/internal/domain"
	"github.com/couchcryptid/storm-harm-report/internal/observability"
)

// Extractor reads the raw table from the input source.
type Extractor interface {
	ExtractTable(ctx context.Context) (*domain.Table, error)
}

// Transformer normalizes a raw table into a clean dataset.
type Transformer interface {
	Transform(ctx context.Context, t *domain.Table) (*domain.Dataset, error)
}

// Summarizer computes the grouped summaries from a clean dataset.
type Summarizer interface {
	Summarize(ctx context.Context, ds *domain.Dataset) (domain.Summaries, error)
}

// Reshaper ranks and pivots summaries into long-form reports.
type Reshaper interface {
	Reshape(ctx context.Context, s domain.Summaries) ([]domain.Report, error)
}

// Renderer hands the finished reports to the rendering collaborator.
type Renderer interface {
	Render(ctx context.Context, reports []domain.Report) error
}

// Pipeline runs load → normalize → summarize → reshape → render once,
// strictly in order. Every stage consumes the previous stage's full,
// immutable output; a stage error aborts the run.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	summarizer  Summarizer
	reshaper    Reshaper
	renderer    Renderer
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// New creates a Pipeline with the given stages and observability.
func New(e Extractor, t Transformer, s Summarizer, rs Reshaper, rn Renderer, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		summarizer:  s,
		reshaper:    rs,
		renderer:    rn,
		logger:      logger,
		metrics:     metrics,
	}
}

// Run executes the batch once. There is no retry logic anywhere: the job is
// a single local computation that either completes or fails.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.logger.Info("pipeline started")

	table, err := timeStage(ctx, p, "load", p.extractor.ExtractTable)
	if err != nil {
		return err
	}
	p.metrics.RowsLoaded.Add(float64(table.Len()))

	ds, err := timeStage(ctx, p, "normalize", func(ctx context.Context) (*domain.Dataset, error) {
		return p.transformer.Transform(ctx, table)
	})
	if err != nil {
		return err
	}
	p.metrics.RecordsNormalized.Add(float64(len(ds.Records)))
	p.logger.Info("dataset normalized",
		"records", len(ds.Records),
		"states", len(ds.States),
		"counties", len(ds.Counties),
		"quality_findings", ds.Quality.Total(),
	)

	summaries, err := timeStage(ctx, p, "summarize", func(ctx context.Context) (domain.Summaries, error) {
		return p.summarizer.Summarize(ctx, ds)
	})
	if err != nil {
		return err
	}
	p.logger.Info("summaries computed",
		"event_groups", len(summaries.Health),
		"state_groups", len(summaries.States),
	)

	reports, err := timeStage(ctx, p, "reshape", func(ctx context.Context) ([]domain.Report, error) {
		return p.reshaper.Reshape(ctx, summaries)
	})
	if err != nil {
		return err
	}

	_, err = timeStage(ctx, p, "render", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, p.renderer.Render(ctx, reports)
	})
	if err != nil {
		return err
	}
	p.metrics.ReportsRendered.Add(float64(len(reports)))

	p.logger.Info("pipeline finished", "duration", time.Since(start), "reports", len(reports))
	return nil
}

// timeStage runs one stage, observing its wall time and logging failures
// with the stage name.
func timeStage[T any](ctx context.Context, p *Pipeline, name string, fn func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	out, err := fn(ctx)
	p.metrics.StageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		p.logger.Error("stage failed", "stage", name, "error", err)
	}
	return out, err
}
