package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/skybatch/weather-etl/internal/domain"
	"github.com/skybatch/weather-etl/internal/observability"
)

// TableValidator is the contract gate between the pipeline and downstream
// aggregation. It verifies the transformed table and returns it unchanged;
// any violation means an upstream stage is defective, so the run aborts
// before output files are written.
type TableValidator struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTableValidator creates a validator.
func NewTableValidator(logger *slog.Logger, metrics *observability.Metrics) *TableValidator {
	return &TableValidator{logger: logger, metrics: metrics}
}

// Validate checks column presence first, then record-level invariants.
func (v *TableValidator) Validate(_ context.Context, in domain.Table) (domain.Table, error) {
	if err := v.checkSchema(in); err != nil {
		return domain.Table{}, v.fail(err)
	}
	for i := range in.Records {
		if err := checkRecord(i, &in.Records[i], in.Schema); err != nil {
			return domain.Table{}, v.fail(err)
		}
	}

	v.logger.Info("table validated", "rows", in.Len())
	return in, nil
}

func (v *TableValidator) fail(err error) error {
	v.metrics.ValidationViolations.Inc()
	return err
}

func (v *TableValidator) checkSchema(in domain.Table) error {
	if missing := in.Schema.MissingRequired(); len(missing) > 0 {
		return &domain.ValidationError{
			Invariant: "required columns present",
			Detail:    (&domain.SchemaError{Missing: missing}).Error(),
		}
	}
	for _, col := range []domain.Column{domain.ColumnTemperatureF, domain.ColumnYear, domain.ColumnMonth, domain.ColumnDay} {
		if !in.Schema.Has(col) {
			return &domain.ValidationError{
				Invariant: "derived columns present",
				Detail:    fmt.Sprintf("column %s was not derived", col),
			}
		}
	}
	return nil
}

func checkRecord(i int, rec *domain.WeatherRecord, schema domain.Schema) error {
	if rec.Date.IsZero() {
		return violation(i, "no missing dates", "record has a zero date")
	}
	if rec.City == "" {
		return violation(i, "city present", "record has an empty city")
	}

	for _, col := range domain.NumericColumns() {
		if schema.Has(col) && rec.Numeric(col) == nil {
			return violation(i, "numeric values imputed", fmt.Sprintf("missing %s", col))
		}
	}

	if rec.Condition == domain.ConditionUnknown {
		return violation(i, "no Unknown conditions", fmt.Sprintf("condition %q survived the transformer", rec.Condition))
	}

	if rec.TemperatureF == nil {
		return violation(i, "fahrenheit derived", "temperature_fahrenheit missing")
	}
	if want := domain.CelsiusToFahrenheit(*rec.TemperatureC); *rec.TemperatureF != want {
		return violation(i, "fahrenheit consistent",
			fmt.Sprintf("got %v for %v°C, want %v", *rec.TemperatureF, *rec.TemperatureC, want))
	}

	if rec.Year != rec.Date.Year() || rec.Month != int(rec.Date.Month()) || rec.Day != rec.Date.Day() {
		return violation(i, "date parts consistent",
			fmt.Sprintf("year/month/day %d-%d-%d do not match date %s", rec.Year, rec.Month, rec.Day, rec.Date.Format("2006-01-02")))
	}

	return nil
}

func violation(record int, invariant, detail string) error {
	return &domain.ValidationError{
		Invariant: invariant,
		Detail:    fmt.Sprintf("record %d: %s", record, detail),
	}
}
