package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skybatch/weather-etl/internal/config"
)

// pointValidationAt swaps the command globals to a fixture file for the
// duration of one test.
func pointValidationAt(t *testing.T, csv string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	prevConfig, prevLogger := appConfig, rootLogger
	t.Cleanup(func() { appConfig, rootLogger = prevConfig, prevLogger })

	appConfig = config.Default()
	appConfig.Input.Path = path
	rootLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

const validInput = "city,date,temperature_celsius,humidity_percent,wind_speed_kph,weather_condition\n" +
	"Paris,2023-01-15,10.0,65,12,Sunny\n" +
	"Rome,2023-01-16,20.0,55,8,rain\n"

func TestRunValidation(t *testing.T) {
	t.Run("clean input passes", func(t *testing.T) {
		pointValidationAt(t, validInput)
		assert.Equal(t, 0, runValidation(context.Background()))
	})

	t.Run("missing required column fails", func(t *testing.T) {
		pointValidationAt(t, "date,temperature_celsius,weather_condition\n2023-01-15,10.0,Sunny\n")
		assert.Equal(t, 1, runValidation(context.Background()))
	})
}

func TestValidateCmd(t *testing.T) {
	t.Run("failure surfaces as an error, not an exit", func(t *testing.T) {
		pointValidationAt(t, "date,temperature_celsius,weather_condition\n2023-01-15,10.0,Sunny\n")
		validateCmd.SetContext(context.Background())

		err := validateCmd.RunE(validateCmd, nil)
		require.ErrorIs(t, err, errValidationFailed)
	})

	t.Run("success returns nil", func(t *testing.T) {
		pointValidationAt(t, validInput)
		validateCmd.SetContext(context.Background())

		require.NoError(t, validateCmd.RunE(validateCmd, nil))
	})
}
