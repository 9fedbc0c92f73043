// Package analysis derives summary statistics from a validated weather
// table. It consumes the pipeline's output read-only; all functions return
// deterministically ordered results so the CSV and report writers produce
// byte-identical files across runs.
package analysis

import (
	"math"
	"sort"

	"github.com/skybatch/weather-etl/internal/domain"
)

// ColumnStats summarizes one numeric column, rounded to two decimals.
type ColumnStats struct {
	Column domain.Column
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Median float64
	Max    float64
}

// CityAggregate holds per-city aggregates for one numeric column.
type CityAggregate struct {
	City   string
	Column domain.Column
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

// ConditionCount is one weather condition with its frequency.
type ConditionCount struct {
	Condition string
	Count     int
}

// CityMean is a city with its mean celsius temperature.
type CityMean struct {
	City             string
	MeanTemperatureC float64
}

// statColumns returns the numeric columns to aggregate, in output order:
// the measurement columns present in the schema plus derived fahrenheit.
func statColumns(schema domain.Schema) []domain.Column {
	var cols []domain.Column
	for _, c := range domain.NumericColumns() {
		if schema.Has(c) {
			cols = append(cols, c)
		}
	}
	if schema.Has(domain.ColumnTemperatureF) {
		cols = append(cols, domain.ColumnTemperatureF)
	}
	return cols
}

func columnValues(t domain.Table, col domain.Column) []float64 {
	values := make([]float64, 0, t.Len())
	for i := range t.Records {
		if v := t.Records[i].Numeric(col); v != nil {
			values = append(values, *v)
		}
	}
	return values
}

// Describe computes basic statistics for every numeric column, ordered by
// column.
func Describe(t domain.Table) []ColumnStats {
	var stats []ColumnStats
	for _, col := range statColumns(t.Schema) {
		values := columnValues(t, col)
		if len(values) == 0 {
			stats = append(stats, ColumnStats{Column: col})
			continue
		}
		stats = append(stats, ColumnStats{
			Column: col,
			Count:  len(values),
			Mean:   round2(mean(values)),
			Std:    round2(std(values)),
			Min:    round2(minOf(values)),
			Median: round2(median(values)),
			Max:    round2(maxOf(values)),
		})
	}
	return stats
}

// CityStats computes mean/median/min/max per city per numeric column,
// ordered by city name then column.
func CityStats(t domain.Table) []CityAggregate {
	cols := statColumns(t.Schema)

	byCity := map[string]map[domain.Column][]float64{}
	for i := range t.Records {
		rec := &t.Records[i]
		group, ok := byCity[rec.City]
		if !ok {
			group = map[domain.Column][]float64{}
			byCity[rec.City] = group
		}
		for _, col := range cols {
			if v := rec.Numeric(col); v != nil {
				group[col] = append(group[col], *v)
			}
		}
	}

	cities := make([]string, 0, len(byCity))
	for city := range byCity {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	var out []CityAggregate
	for _, city := range cities {
		for _, col := range cols {
			values := byCity[city][col]
			if len(values) == 0 {
				continue
			}
			out = append(out, CityAggregate{
				City:   city,
				Column: col,
				Mean:   round2(mean(values)),
				Median: round2(median(values)),
				Min:    round2(minOf(values)),
				Max:    round2(maxOf(values)),
			})
		}
	}
	return out
}

// ConditionFrequency counts records per weather condition, most frequent
// first, ties broken by name.
func ConditionFrequency(t domain.Table) []ConditionCount {
	counts := map[string]int{}
	for i := range t.Records {
		counts[t.Records[i].Condition]++
	}

	out := make([]ConditionCount, 0, len(counts))
	for condition, count := range counts {
		out = append(out, ConditionCount{Condition: condition, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Condition < out[j].Condition
	})
	return out
}

// AverageTemperatureByCity returns every city's mean celsius temperature,
// warmest first, ties broken by name.
func AverageTemperatureByCity(t domain.Table) []CityMean {
	sums := map[string]float64{}
	counts := map[string]int{}
	for i := range t.Records {
		rec := &t.Records[i]
		if rec.TemperatureC == nil {
			continue
		}
		sums[rec.City] += *rec.TemperatureC
		counts[rec.City]++
	}

	out := make([]CityMean, 0, len(sums))
	for city, sum := range sums {
		out = append(out, CityMean{City: city, MeanTemperatureC: round2(sum / float64(counts[city]))})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MeanTemperatureC != out[j].MeanTemperatureC {
			return out[i].MeanTemperatureC > out[j].MeanTemperatureC
		}
		return out[i].City < out[j].City
	})
	return out
}

// TopCities returns the n warmest cities by mean celsius temperature.
func TopCities(t domain.Table, n int) []CityMean {
	all := AverageTemperatureByCity(t)
	if len(all) > n {
		all = all[:n]
	}
	return all
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// std is the sample standard deviation (n-1 denominator). Zero for a single
// sample.
func std(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

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

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
