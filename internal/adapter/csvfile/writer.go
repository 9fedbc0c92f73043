package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/skybatch/weather-etl/internal/analysis"
	"github.com/skybatch/weather-etl/internal/domain"
)

// recordColumns is the output column order for the transformed data file.
// Only columns present in the table's schema are written.
var recordColumns = []domain.Column{
	domain.ColumnCity,
	domain.ColumnDate,
	domain.ColumnTemperatureC,
	domain.ColumnHumidity,
	domain.ColumnWindSpeed,
	domain.ColumnCondition,
	domain.ColumnYear,
	domain.ColumnMonth,
	domain.ColumnDay,
	domain.ColumnTemperatureF,
}

// WriteRecords writes the cleaned table to path, preserving record order.
func WriteRecords(path string, t domain.Table) error {
	var cols []domain.Column
	for _, c := range recordColumns {
		if t.Schema.Has(c) {
			cols = append(cols, c)
		}
	}

	rows := make([][]string, 0, t.Len()+1)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = string(c)
	}
	rows = append(rows, header)

	for i := range t.Records {
		rows = append(rows, recordRow(&t.Records[i], cols))
	}

	return writeCSV(path, rows)
}

func recordRow(rec *domain.WeatherRecord, cols []domain.Column) []string {
	row := make([]string, len(cols))
	for i, c := range cols {
		switch c {
		case domain.ColumnCity:
			row[i] = rec.City
		case domain.ColumnDate:
			row[i] = rec.Date.Format("2006-01-02")
		case domain.ColumnCondition:
			row[i] = rec.Condition
		case domain.ColumnYear:
			row[i] = strconv.Itoa(rec.Year)
		case domain.ColumnMonth:
			row[i] = strconv.Itoa(rec.Month)
		case domain.ColumnDay:
			row[i] = strconv.Itoa(rec.Day)
		default:
			if v := rec.Numeric(c); v != nil {
				row[i] = formatFloat(*v)
			}
		}
	}
	return row
}

// WriteBasicStats writes the per-column summary statistics.
func WriteBasicStats(path string, stats []analysis.ColumnStats) error {
	rows := [][]string{{"column", "count", "mean", "std", "min", "median", "max"}}
	for _, s := range stats {
		rows = append(rows, []string{
			string(s.Column),
			strconv.Itoa(s.Count),
			formatFloat(s.Mean),
			formatFloat(s.Std),
			formatFloat(s.Min),
			formatFloat(s.Median),
			formatFloat(s.Max),
		})
	}
	return writeCSV(path, rows)
}

// WriteCityStats writes the per-city aggregates.
func WriteCityStats(path string, aggs []analysis.CityAggregate) error {
	rows := [][]string{{"city", "column", "mean", "median", "min", "max"}}
	for _, a := range aggs {
		rows = append(rows, []string{
			a.City,
			string(a.Column),
			formatFloat(a.Mean),
			formatFloat(a.Median),
			formatFloat(a.Min),
			formatFloat(a.Max),
		})
	}
	return writeCSV(path, rows)
}

// WriteConditionFrequency writes the weather condition counts.
func WriteConditionFrequency(path string, counts []analysis.ConditionCount) error {
	rows := [][]string{{"weather_condition", "count"}}
	for _, c := range counts {
		rows = append(rows, []string{c.Condition, strconv.Itoa(c.Count)})
	}
	return writeCSV(path, rows)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
