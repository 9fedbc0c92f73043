package pipeline

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/skybatch/weather-etl/internal/config"
	"github.com/skybatch/weather-etl/internal/domain"
	"github.com/skybatch/weather-etl/internal/observability"
)

// CSVLoader parses raw CSV rows into a typed weather table. Cell-level parse
// failures become missing-value markers; only an absent required column
// aborts loading.
type CSVLoader struct {
	columns     map[domain.Column]string
	dateFormats []string
	missing     map[string]bool
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// NewCSVLoader creates a loader from the input configuration.
func NewCSVLoader(cfg config.InputConfig, logger *slog.Logger, metrics *observability.Metrics) *CSVLoader {
	missing := make(map[string]bool, len(cfg.MissingValues))
	for _, v := range cfg.MissingValues {
		missing[strings.TrimSpace(v)] = true
	}
	// The empty cell is always a missing marker, whatever the config says.
	missing[""] = true

	return &CSVLoader{
		columns:     cfg.Columns.Mapping(),
		dateFormats: cfg.DateFormats,
		missing:     missing,
		logger:      logger,
		metrics:     metrics,
	}
}

// Load converts a raw table into a typed one. Rows whose date matches no
// accepted format keep a zero date so the cleaner can apply the uniform
// drop-on-missing-required-field rule; loading itself never drops rows.
func (l *CSVLoader) Load(_ context.Context, raw domain.RawTable) (domain.Table, error) {
	index, schema, err := l.resolveHeader(raw.Header)
	if err != nil {
		return domain.Table{}, err
	}

	table := domain.Table{
		Schema:  schema,
		Records: make([]domain.WeatherRecord, 0, len(raw.Rows)),
	}

	for i, row := range raw.Rows {
		table.Records = append(table.Records, l.loadRow(i, row, index))
	}

	l.metrics.RowsLoaded.Add(float64(len(table.Records)))
	l.logger.Info("loaded input table", "rows", len(table.Records), "columns", len(schema))
	return table, nil
}

// resolveHeader maps each configured column to its position in the header.
// Required columns must resolve; optional measurement columns are recorded
// in the schema only when present.
func (l *CSVLoader) resolveHeader(header []string) (map[domain.Column]int, domain.Schema, error) {
	position := make(map[string]int, len(header))
	for i, name := range header {
		position[strings.TrimSpace(name)] = i
	}

	index := map[domain.Column]int{}
	schema := domain.Schema{}
	for col, name := range l.columns {
		if i, ok := position[name]; ok {
			index[col] = i
			schema[col] = true
		}
	}

	if missing := schema.MissingRequired(); len(missing) > 0 {
		return nil, nil, &domain.SchemaError{Missing: missing}
	}
	return index, schema, nil
}

func (l *CSVLoader) loadRow(rowNum int, row []string, index map[domain.Column]int) domain.WeatherRecord {
	cell := func(col domain.Column) (string, bool) {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	var rec domain.WeatherRecord

	if v, ok := cell(domain.ColumnCity); ok && !l.missing[v] {
		rec.City = v
	}
	if v, ok := cell(domain.ColumnCondition); ok && !l.missing[v] {
		rec.Condition = v
	}
	if v, ok := cell(domain.ColumnDate); ok && !l.missing[v] {
		rec.Date = l.parseDate(rowNum, v)
	}

	for _, col := range domain.NumericColumns() {
		v, ok := cell(col)
		if !ok || l.missing[v] {
			continue
		}
		if parsed, ok := l.parseNumeric(rowNum, col, v); ok {
			rec.SetNumeric(col, parsed)
		}
	}

	return rec
}

// parseDate tries each configured layout in order; the first match wins.
// A row is not required to match the same format as its neighbors. Returns
// the zero time when nothing matches.
func (l *CSVLoader) parseDate(rowNum int, value string) time.Time {
	for _, layout := range l.dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	l.metrics.CellParseErrors.Inc()
	l.logger.Debug("unparseable date", "row", rowNum, "value", value)
	return time.Time{}
}

func (l *CSVLoader) parseNumeric(rowNum int, col domain.Column, value string) (float64, bool) {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		perr := &domain.ParseError{Column: col, Value: value, Err: err}
		l.metrics.CellParseErrors.Inc()
		l.logger.Debug("unparseable numeric cell", "row", rowNum, "error", perr)
		return 0, false
	}
	return parsed, true
}
