package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skybatch/weather-etl/internal/analysis"
)

func TestRenderAverageTemperature(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avg.png")
	cities := []analysis.CityMean{
		{City: "Athens", MeanTemperatureC: 22.5},
		{City: "Paris", MeanTemperatureC: 12},
		{City: "Oslo", MeanTemperatureC: -2.25},
	}
	require.NoError(t, RenderAverageTemperature(path, cities))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderAverageTemperature_NoCities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	require.NoError(t, RenderAverageTemperature(path, nil))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestRenderAverageTemperature_BadExtension(t *testing.T) {
	err := RenderAverageTemperature(filepath.Join(t.TempDir(), "avg.nope"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save chart")
}
