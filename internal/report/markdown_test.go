package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skybatch/weather-etl/internal/analysis"
	"github.com/skybatch/weather-etl/internal/domain"
)

func freezeClock(t *testing.T) {
	t.Helper()
	at := time.Date(2023, 6, 1, 12, 30, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { domain.SetClock(nil) })
}

func TestTopCitiesMarkdown(t *testing.T) {
	freezeClock(t)

	cities := []analysis.CityMean{
		{City: "Athens", MeanTemperatureC: 22.5},
		{City: "Paris", MeanTemperatureC: 12},
		{City: "Oslo", MeanTemperatureC: 0.25},
	}
	got := TopCitiesMarkdown(cities)

	assert.True(t, strings.HasPrefix(got, "# Weather Data Analysis Report\n"))
	assert.Contains(t, got, "## Top 3 Warmest Cities\n")
	assert.Contains(t, got, "Generated: 2023-06-01 12:30 UTC\n")

	lines := strings.Split(got, "\n")
	var table []string
	for _, line := range lines {
		if strings.HasPrefix(line, "|") {
			table = append(table, line)
		}
	}
	require.Len(t, table, 5)

	assert.Equal(t, "| Rank | City   | Average Temperature (°C) |", table[0])
	assert.Equal(t, "| ---- | ------ | ------------------------ |", table[1])
	assert.Equal(t, "| 1    | Athens | 22.50°C                  |", table[2])
	assert.Equal(t, "| 2    | Paris  | 12.00°C                  |", table[3])
	assert.Equal(t, "| 3    | Oslo   | 0.25°C                   |", table[4])
}

func TestTopCitiesMarkdown_WideCells(t *testing.T) {
	freezeClock(t)

	cities := []analysis.CityMean{
		{City: "São Paulo de Something Long", MeanTemperatureC: 19},
		{City: "Oslo", MeanTemperatureC: 1},
	}
	got := TopCitiesMarkdown(cities)

	// Every table line pads to the same display width.
	var widths []int
	for _, line := range strings.Split(got, "\n") {
		if strings.HasPrefix(line, "|") {
			widths = append(widths, len([]rune(line)))
		}
	}
	require.Len(t, widths, 4)
	for _, w := range widths[1:] {
		assert.Equal(t, widths[0], w)
	}
}

func TestTopCitiesMarkdown_Empty(t *testing.T) {
	freezeClock(t)

	got := TopCitiesMarkdown(nil)
	assert.Contains(t, got, "## Top 0 Warmest Cities\n")
	assert.Contains(t, got, "| Rank | City | Average Temperature (°C) |")
}

func TestWriteTopCities(t *testing.T) {
	freezeClock(t)

	path := filepath.Join(t.TempDir(), "report.md")
	cities := []analysis.CityMean{{City: "Paris", MeanTemperatureC: 12}}
	require.NoError(t, WriteTopCities(path, cities))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, TopCitiesMarkdown(cities), string(data))
}
