package domain

import "time"

// Column identifies a logical column of the weather table. Values match the
// canonical CSV header names.
type Column string

const (
	ColumnCity         Column = "city"
	ColumnDate         Column = "date"
	ColumnTemperatureC Column = "temperature_celsius"
	ColumnHumidity     Column = "humidity_percent"
	ColumnWindSpeed    Column = "wind_speed_kph"
	ColumnCondition    Column = "weather_condition"

	// Derived columns, never present on input.
	ColumnTemperatureF Column = "temperature_fahrenheit"
	ColumnYear         Column = "year"
	ColumnMonth        Column = "month"
	ColumnDay          Column = "day"
)

// RequiredColumns returns the columns that must be present in the input
// schema. Absence of any of them is a fatal schema error.
func RequiredColumns() []Column {
	return []Column{ColumnCity, ColumnDate, ColumnTemperatureC, ColumnCondition}
}

// NumericColumns returns the measurement columns subject to per-city median
// imputation, in output order. A table may carry a subset of these; only
// columns present in the schema are imputed.
func NumericColumns() []Column {
	return []Column{ColumnTemperatureC, ColumnHumidity, ColumnWindSpeed}
}

// WeatherRecord is one observation row. Nil numeric pointers and a zero Date
// mark missing values until the cleaner enforces them present.
type WeatherRecord struct {
	City         string
	Date         time.Time
	TemperatureC *float64
	Humidity     *float64
	WindSpeed    *float64
	Condition    string

	// Derived by the transformer.
	TemperatureF *float64
	Year         int
	Month        int
	Day          int
}

// Numeric returns a pointer to the record's value for a measurement column,
// or nil for columns that are not numeric measurements.
func (r *WeatherRecord) Numeric(c Column) *float64 {
	switch c {
	case ColumnTemperatureC:
		return r.TemperatureC
	case ColumnHumidity:
		return r.Humidity
	case ColumnWindSpeed:
		return r.WindSpeed
	case ColumnTemperatureF:
		return r.TemperatureF
	}
	return nil
}

// SetNumeric assigns a measurement column value. Unknown columns are ignored.
func (r *WeatherRecord) SetNumeric(c Column, v float64) {
	switch c {
	case ColumnTemperatureC:
		r.TemperatureC = &v
	case ColumnHumidity:
		r.Humidity = &v
	case ColumnWindSpeed:
		r.WindSpeed = &v
	case ColumnTemperatureF:
		r.TemperatureF = &v
	}
}

// Schema is the set of columns present in a table.
type Schema map[Column]bool

// Has reports whether the schema contains the column.
func (s Schema) Has(c Column) bool { return s[c] }

// MissingRequired returns the required columns absent from the schema,
// in RequiredColumns order.
func (s Schema) MissingRequired() []Column {
	var missing []Column
	for _, c := range RequiredColumns() {
		if !s[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// Clone returns an independent copy of the schema.
func (s Schema) Clone() Schema {
	out := make(Schema, len(s))
	for c, ok := range s {
		out[c] = ok
	}
	return out
}

// Table is an ordered collection of records sharing one schema. Stages
// receive a table, transform a copy, and hand the result on; relative record
// order is preserved throughout the pipeline.
type Table struct {
	Schema  Schema
	Records []WeatherRecord
}

// Clone returns a deep-enough copy for a stage to own: the record slice and
// schema are fresh, so appends and schema edits never alias the input.
func (t Table) Clone() Table {
	records := make([]WeatherRecord, len(t.Records))
	copy(records, t.Records)
	return Table{Schema: t.Schema.Clone(), Records: records}
}

// Len returns the number of records.
func (t Table) Len() int { return len(t.Records) }

// RawTable is the untyped form straight out of the CSV reader: a header and
// string cells, before any parsing.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// Float returns a pointer to v. Convenience for building records.
func Float(v float64) *float64 { return &v }
