package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// cleaning pipeline.
type Metrics struct {
	RowsLoaded           prometheus.Counter
	RowsDroppedNoDate    prometheus.Counter
	RowsDroppedNoCity    prometheus.Counter
	RowsDroppedUnknown   prometheus.Counter
	CellsImputed         prometheus.Counter
	CellParseErrors      prometheus.Counter
	PipelineRunning      prometheus.Gauge
	StageDuration        *prometheus.HistogramVec // label: stage={load,clean,transform,validate}
	ValidationViolations prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "rows_loaded_total",
			Help:      "Total rows parsed from the input CSV.",
		}),
		RowsDroppedNoDate: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "rows_dropped_missing_date_total",
			Help:      "Rows dropped by the cleaner because no date format matched.",
		}),
		RowsDroppedNoCity: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "rows_dropped_missing_city_total",
			Help:      "Rows dropped by the cleaner because the city cell was missing.",
		}),
		RowsDroppedUnknown: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "rows_dropped_unknown_condition_total",
			Help:      "Rows removed by the transformer for an Unknown condition.",
		}),
		CellsImputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "cells_imputed_total",
			Help:      "Missing numeric cells filled with a median.",
		}),
		CellParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "cell_parse_errors_total",
			Help:      "Cells that failed type conversion and became missing markers.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_etl",
			Name:      "pipeline_running",
			Help:      "1 while a pipeline run is active.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_etl",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"stage"}),
		ValidationViolations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "validation_violations_total",
			Help:      "Post-transformation invariant violations detected.",
		}),
	}

	prometheus.MustRegister(
		m.RowsLoaded,
		m.RowsDroppedNoDate,
		m.RowsDroppedNoCity,
		m.RowsDroppedUnknown,
		m.CellsImputed,
		m.CellParseErrors,
		m.PipelineRunning,
		m.StageDuration,
		m.ValidationViolations,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RowsLoaded:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_etl", Name: "rows_loaded_total"}),
		RowsDroppedNoDate:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_etl", Name: "rows_dropped_missing_date_total"}),
		RowsDroppedNoCity:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_etl", Name: "rows_dropped_missing_city_total"}),
		RowsDroppedUnknown:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_etl", Name: "rows_dropped_unknown_condition_total"}),
		CellsImputed:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_etl", Name: "cells_imputed_total"}),
		CellParseErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_etl", Name: "cell_parse_errors_total"}),
		PipelineRunning:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_etl", Name: "pipeline_running"}),
		StageDuration:        prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_etl", Name: "stage_duration_seconds"}, []string{"stage"}),
		ValidationViolations: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_etl", Name: "validation_violations_total"}),
	}
}
