package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaMissingRequired(t *testing.T) {
	t.Run("complete schema", func(t *testing.T) {
		s := Schema{ColumnCity: true, ColumnDate: true, ColumnTemperatureC: true, ColumnCondition: true}
		assert.Empty(t, s.MissingRequired())
	})

	t.Run("missing columns reported in order", func(t *testing.T) {
		s := Schema{ColumnTemperatureC: true}
		assert.Equal(t, []Column{ColumnCity, ColumnDate, ColumnCondition}, s.MissingRequired())
	})
}

func TestSchemaError(t *testing.T) {
	err := error(&SchemaError{Missing: []Column{ColumnCity, ColumnDate}})
	assert.Equal(t, "missing required columns: city, date", err.Error())

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Len(t, schemaErr.Missing, 2)
}

func TestTableClone(t *testing.T) {
	orig := Table{
		Schema: Schema{ColumnCity: true},
		Records: []WeatherRecord{
			{City: "Paris", TemperatureC: Float(10)},
		},
	}

	clone := orig.Clone()
	clone.Schema[ColumnDate] = true
	clone.Records[0].City = "Rome"

	assert.False(t, orig.Schema.Has(ColumnDate))
	assert.Equal(t, "Paris", orig.Records[0].City)
}

func TestRecordNumericAccess(t *testing.T) {
	var rec WeatherRecord
	rec.SetNumeric(ColumnTemperatureC, 21.5)
	rec.SetNumeric(ColumnHumidity, 60)

	require.NotNil(t, rec.Numeric(ColumnTemperatureC))
	assert.Equal(t, 21.5, *rec.Numeric(ColumnTemperatureC))
	assert.Nil(t, rec.Numeric(ColumnWindSpeed))
	assert.Nil(t, rec.Numeric(ColumnDate))
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Invariant: "no missing dates", Detail: "record 3: zero date"}
	assert.Equal(t, "validation failed: no missing dates: record 3: zero date", err.Error())
}

func TestRecordZeroDateMarksMissing(t *testing.T) {
	var rec WeatherRecord
	assert.True(t, rec.Date.IsZero())
	rec.Date = time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.False(t, rec.Date.IsZero())
}
