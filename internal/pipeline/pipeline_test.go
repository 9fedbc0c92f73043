package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skybatch/weather-etl/internal/config"
	"github.com/skybatch/weather-etl/internal/domain"
	"github.com/skybatch/weather-etl/internal/observability"
	"github.com/skybatch/weather-etl/internal/pipeline"
)

func newTestPipeline() *pipeline.Pipeline {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetricsForTesting()
	loader := pipeline.NewCSVLoader(config.Default().Input, logger, metrics)
	return pipeline.NewDefault(loader, logger, metrics)
}

func messyRawTable() domain.RawTable {
	return domain.RawTable{
		Header: []string{"city", "date", "temperature_celsius", "humidity_percent", "wind_speed_kph", "weather_condition"},
		Rows: [][]string{
			{"Paris", "2023-01-15", "10.0", "65", "12", "Sunny"},
			{"Rome", "01/20/2023", "20.0", "55", "8", "sunny"},
			{"Rome", "2023-01-21", "22.0", "50", "9", "rain"},
			{"Rome", "2023/01/22", "24.0", "52", "7", "overcast"},
			{"Rome", "Jan 23, 2023", "", "51", "8", "Sunny"},          // temperature imputed to Rome median
			{"Berlin", "garbled", "5.0", "70", "10", "Cloudy"},        // dropped: no date
			{"Berlin", "2023-01-25", "4.0", "", "11", "Snowy"},        // humidity imputed
			{"Berlin", "2023-01-26", "3.0", "72", "10", "  unknown "}, // dropped: Unknown condition
		},
	}
}

func TestPipelineRun(t *testing.T) {
	ctx := context.Background()

	t.Run("end to end over messy input", func(t *testing.T) {
		table, err := newTestPipeline().Run(ctx, messyRawTable())
		require.NoError(t, err)

		// 8 input rows, minus the unparseable date and the Unknown condition.
		require.Equal(t, 6, table.Len())

		// Paris scenario row.
		paris := table.Records[0]
		assert.Equal(t, "Paris", paris.City)
		assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), paris.Date)
		require.NotNil(t, paris.TemperatureF)
		assert.Equal(t, 50.0, *paris.TemperatureF)
		assert.Equal(t, 2023, paris.Year)
		assert.Equal(t, 1, paris.Month)
		assert.Equal(t, 15, paris.Day)
		assert.Equal(t, "Sunny", paris.Condition)

		// Rome's missing temperature got the Rome median of 20, 22, 24.
		rome := table.Records[4]
		require.NotNil(t, rome.TemperatureC)
		assert.Equal(t, 22.0, *rome.TemperatureC)
		assert.Equal(t, 22.0*9/5+32, *rome.TemperatureF)

		// No Unknown conditions and no garbled dates in the output.
		for i, rec := range table.Records {
			assert.NotEqual(t, domain.ConditionUnknown, rec.Condition, "row %d", i)
			assert.False(t, rec.Date.IsZero(), "row %d", i)
		}
	})

	t.Run("output preserves input order", func(t *testing.T) {
		table, err := newTestPipeline().Run(ctx, messyRawTable())
		require.NoError(t, err)

		var got []string
		for _, rec := range table.Records {
			got = append(got, rec.City+"/"+rec.Date.Format("2006-01-02"))
		}
		want := []string{
			"Paris/2023-01-15",
			"Rome/2023-01-20",
			"Rome/2023-01-21",
			"Rome/2023-01-22",
			"Rome/2023-01-23",
			"Berlin/2023-01-25",
		}
		assert.Equal(t, want, got)
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		first, err := newTestPipeline().Run(ctx, messyRawTable())
		require.NoError(t, err)
		second, err := newTestPipeline().Run(ctx, messyRawTable())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("empty city cell drops the row, not the run", func(t *testing.T) {
		raw := domain.RawTable{
			Header: []string{"city", "date", "temperature_celsius", "humidity_percent", "wind_speed_kph", "weather_condition"},
			Rows: [][]string{
				{"Paris", "2023-01-15", "10.0", "65", "12", "Sunny"},
				{"", "2023-01-16", "11.0", "60", "10", "Sunny"},
				{"NA", "2023-01-17", "12.0", "58", "9", "Sunny"},
			},
		}

		table, err := newTestPipeline().Run(ctx, raw)
		require.NoError(t, err)
		require.Equal(t, 1, table.Len())
		assert.Equal(t, "Paris", table.Records[0].City)
	})

	t.Run("missing city column aborts with SchemaError", func(t *testing.T) {
		raw := domain.RawTable{
			Header: []string{"date", "temperature_celsius", "weather_condition"},
			Rows:   [][]string{{"2023-01-01", "5", "Sunny"}},
		}

		_, err := newTestPipeline().Run(ctx, raw)
		var schemaErr *domain.SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, []domain.Column{domain.ColumnCity}, schemaErr.Missing)
	})

	t.Run("cancelled context stops the run", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newTestPipeline().Run(cancelled, messyRawTable())
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("stage error propagates unwrapped", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		metrics := observability.NewMetricsForTesting()
		boom := errors.New("cleaner exploded")

		p := pipeline.New(
			pipeline.NewCSVLoader(config.Default().Input, logger, metrics),
			failingCleaner{err: boom},
			pipeline.NewDeriveTransformer(logger, metrics),
			pipeline.NewTableValidator(logger, metrics),
			logger,
			metrics,
		)

		_, err := p.Run(ctx, messyRawTable())
		require.ErrorIs(t, err, boom)
	})
}

type failingCleaner struct{ err error }

func (f failingCleaner) Clean(_ context.Context, _ domain.Table) (domain.Table, error) {
	return domain.Table{}, f.err
}
