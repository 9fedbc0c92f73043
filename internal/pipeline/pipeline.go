// Package pipeline implements the four-stage weather table pipeline:
// load, clean, transform, validate. Stages run strictly in that order;
// each owns its working copy of the table and hands a completed result
// to the next.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/skybatch/weather-etl/internal/domain"
	"github.com/skybatch/weather-etl/internal/observability"
)

// Loader parses raw CSV rows into a typed table.
type Loader interface {
	Load(ctx context.Context, raw domain.RawTable) (domain.Table, error)
}

// Cleaner repairs missing values and standardizes categorical text.
type Cleaner interface {
	Clean(ctx context.Context, table domain.Table) (domain.Table, error)
}

// Transformer derives computed columns and removes invalid rows.
type Transformer interface {
	Transform(ctx context.Context, table domain.Table) (domain.Table, error)
}

// Validator verifies the transformed table before it reaches downstream
// aggregation.
type Validator interface {
	Validate(ctx context.Context, table domain.Table) (domain.Table, error)
}

// Pipeline orchestrates the load-clean-transform-validate sequence.
type Pipeline struct {
	loader      Loader
	cleaner     Cleaner
	transformer Transformer
	validator   Validator
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// New creates a Pipeline with the given stages and observability.
func New(l Loader, c Cleaner, t Transformer, v Validator, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		loader:      l,
		cleaner:     c,
		transformer: t,
		validator:   v,
		logger:      logger,
		metrics:     metrics,
	}
}

// NewDefault wires the standard stage implementations into a Pipeline.
func NewDefault(loader *CSVLoader, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return New(
		loader,
		NewMedianCleaner(logger, metrics),
		NewDeriveTransformer(logger, metrics),
		NewTableValidator(logger, metrics),
		logger,
		metrics,
	)
}

// Run executes the full pipeline over one raw table and returns the
// validated result. It fails fast: the first stage error aborts the run
// and no partial table is returned.
func (p *Pipeline) Run(ctx context.Context, raw domain.RawTable) (domain.Table, error) {
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	start := time.Now()

	table, err := p.stage(ctx, "load", len(raw.Rows), func() (domain.Table, error) {
		return p.loader.Load(ctx, raw)
	})
	if err != nil {
		return domain.Table{}, err
	}

	table, err = p.stage(ctx, "clean", table.Len(), func() (domain.Table, error) {
		return p.cleaner.Clean(ctx, table)
	})
	if err != nil {
		return domain.Table{}, err
	}

	table, err = p.stage(ctx, "transform", table.Len(), func() (domain.Table, error) {
		return p.transformer.Transform(ctx, table)
	})
	if err != nil {
		return domain.Table{}, err
	}

	table, err = p.stage(ctx, "validate", table.Len(), func() (domain.Table, error) {
		return p.validator.Validate(ctx, table)
	})
	if err != nil {
		return domain.Table{}, err
	}

	p.logger.Info("pipeline complete", "rows", table.Len(), "duration", time.Since(start))
	return table, nil
}

// stage runs one stage with duration metrics and consistent logging.
func (p *Pipeline) stage(ctx context.Context, name string, rowsIn int, fn func() (domain.Table, error)) (domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return domain.Table{}, err
	}

	start := time.Now()
	out, err := fn()
	p.metrics.StageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		p.logger.Error("stage failed", "stage", name, "error", err)
		return domain.Table{}, err
	}

	p.logger.Debug("stage complete", "stage", name, "rows_in", rowsIn, "rows_out", out.Len())
	return out, nil
}
