package pipeline

import (
	"context"
	"log/slog"
	"sort"

	"github.com/skybatch/weather-etl/internal/domain"
	"github.com/skybatch/weather-etl/internal/observability"
)

// MedianCleaner repairs a loaded table: drops records missing a date or a
// city, fills missing numeric values with per-city medians, and standardizes
// condition text. The drops run first so group medians are computed only
// over records that survive.
type MedianCleaner struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewMedianCleaner creates a cleaner.
func NewMedianCleaner(logger *slog.Logger, metrics *observability.Metrics) *MedianCleaner {
	return &MedianCleaner{logger: logger, metrics: metrics}
}

// Clean returns a table with dates and cities enforced present, numerics
// imputed, and conditions standardized. A city with no samples for a column
// falls back to the global column median; a column with no samples at all is
// an ImputationError.
func (c *MedianCleaner) Clean(_ context.Context, in domain.Table) (domain.Table, error) {
	if missing := in.Schema.MissingRequired(); len(missing) > 0 {
		return domain.Table{}, &domain.SchemaError{Missing: missing}
	}

	table := c.dropUnusableRows(in)

	if err := c.imputeNumerics(&table); err != nil {
		return domain.Table{}, err
	}

	for i := range table.Records {
		table.Records[i].Condition = domain.CanonicalCondition(table.Records[i].Condition)
	}

	return table, nil
}

// dropUnusableRows removes records missing a date or a city. Both fields
// have no defensible fill value: the date cannot be invented and the city is
// the imputation group key.
func (c *MedianCleaner) dropUnusableRows(in domain.Table) domain.Table {
	out := domain.Table{Schema: in.Schema.Clone(), Records: make([]domain.WeatherRecord, 0, len(in.Records))}
	var noDate, noCity int
	for _, rec := range in.Records {
		switch {
		case rec.Date.IsZero():
			noDate++
		case rec.City == "":
			noCity++
		default:
			out.Records = append(out.Records, rec)
		}
	}

	if noDate > 0 {
		c.metrics.RowsDroppedNoDate.Add(float64(noDate))
		c.logger.Info("dropped rows with missing dates", "dropped", noDate)
	}
	if noCity > 0 {
		c.metrics.RowsDroppedNoCity.Add(float64(noCity))
		c.logger.Info("dropped rows with missing cities", "dropped", noCity)
	}
	return out
}

// imputeNumerics runs the two-pass aggregate-then-broadcast fill: first a
// per-city median per column, then one walk writing the fill values into the
// missing cells. Every missing cell in a group receives the identical value.
func (c *MedianCleaner) imputeNumerics(table *domain.Table) error {
	for _, col := range domain.NumericColumns() {
		if !table.Schema.Has(col) {
			continue
		}

		byCity := map[string][]float64{}
		var all []float64
		for i := range table.Records {
			if v := table.Records[i].Numeric(col); v != nil {
				byCity[table.Records[i].City] = append(byCity[table.Records[i].City], *v)
				all = append(all, *v)
			}
		}

		medians := make(map[string]float64, len(byCity))
		for city, values := range byCity {
			medians[city] = median(values)
		}

		var imputed int
		for i := range table.Records {
			rec := &table.Records[i]
			if rec.Numeric(col) != nil {
				continue
			}
			fill, ok := medians[rec.City]
			if !ok {
				if len(all) == 0 {
					return &domain.ImputationError{Column: col}
				}
				fill = median(all)
			}
			rec.SetNumeric(col, fill)
			imputed++
		}

		if imputed > 0 {
			c.metrics.CellsImputed.Add(float64(imputed))
			c.logger.Info("imputed missing values", "column", string(col), "cells", imputed)
		}
	}
	return nil
}

// median returns the middle value of the inputs, averaging the two middle
// values for even counts. The input slice is not modified.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
