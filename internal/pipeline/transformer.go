package pipeline

import (
	"context"
	"log/slog"

	"github.com/skybatch/weather-etl/internal/domain"
	"github.com/skybatch/weather-etl/internal/observability"
)

// DeriveTransformer turns a cleaned table into the analysis-ready one:
// fahrenheit mirror, date parts, and removal of Unknown-condition rows.
// Surviving records keep their relative input order.
type DeriveTransformer struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewDeriveTransformer creates a transformer.
func NewDeriveTransformer(logger *slog.Logger, metrics *observability.Metrics) *DeriveTransformer {
	return &DeriveTransformer{logger: logger, metrics: metrics}
}

// Transform derives the computed columns and filters sentinel rows. The
// Unknown filter runs here, after the cleaner has collapsed synonyms into
// the sentinel, and is the only row removal in this stage.
func (t *DeriveTransformer) Transform(_ context.Context, in domain.Table) (domain.Table, error) {
	out := domain.Table{Schema: in.Schema.Clone(), Records: make([]domain.WeatherRecord, 0, len(in.Records))}
	out.Schema[domain.ColumnTemperatureF] = true
	out.Schema[domain.ColumnYear] = true
	out.Schema[domain.ColumnMonth] = true
	out.Schema[domain.ColumnDay] = true

	for _, rec := range in.Records {
		if rec.Condition == domain.ConditionUnknown {
			continue
		}

		if rec.TemperatureC != nil {
			rec.TemperatureF = domain.Float(domain.CelsiusToFahrenheit(*rec.TemperatureC))
		}
		rec.Year = rec.Date.Year()
		rec.Month = int(rec.Date.Month())
		rec.Day = rec.Date.Day()

		out.Records = append(out.Records, rec)
	}

	if dropped := len(in.Records) - len(out.Records); dropped > 0 {
		t.metrics.RowsDroppedUnknown.Add(float64(dropped))
		t.logger.Info("dropped rows with unknown conditions", "dropped", dropped)
	}
	return out, nil
}
