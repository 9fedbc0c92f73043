package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skybatch/weather-etl/internal/adapter/chart"
	"github.com/skybatch/weather-etl/internal/adapter/csvfile"
	"github.com/skybatch/weather-etl/internal/analysis"
	"github.com/skybatch/weather-etl/internal/config"
	"github.com/skybatch/weather-etl/internal/observability"
	"github.com/skybatch/weather-etl/internal/pipeline"
	"github.com/skybatch/weather-etl/internal/report"
)

// Output file names, regenerated on every run.
const (
	fileTransformed = "transformed_weather_data.csv"
	fileBasicStats  = "basic_stats.csv"
	fileCityStats   = "city_stats.csv"
	fileWeatherFreq = "weather_freq.csv"
	fileReport      = "top_cities_report.md"
	fileChart       = "avg_temperature_by_city.png"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline and write all output files",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := runPipeline(ctx, appConfig, rootLogger); err != nil {
			rootLogger.Error("pipeline run failed", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runPipeline(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	metrics := observability.NewMetrics()

	raw, err := csvfile.Read(cfg.Input.Path)
	if err != nil {
		return err
	}

	loader := pipeline.NewCSVLoader(cfg.Input, logger, metrics)
	p := pipeline.NewDefault(loader, logger, metrics)

	table, err := p.Run(ctx, raw)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	out := func(name string) string { return filepath.Join(cfg.Output.Dir, name) }

	if err := csvfile.WriteRecords(out(fileTransformed), table); err != nil {
		return err
	}
	if err := csvfile.WriteBasicStats(out(fileBasicStats), analysis.Describe(table)); err != nil {
		return err
	}
	if err := csvfile.WriteCityStats(out(fileCityStats), analysis.CityStats(table)); err != nil {
		return err
	}
	if err := csvfile.WriteConditionFrequency(out(fileWeatherFreq), analysis.ConditionFrequency(table)); err != nil {
		return err
	}
	if err := report.WriteTopCities(out(fileReport), analysis.TopCities(table, 5)); err != nil {
		return err
	}

	if cfg.Output.Chart {
		if err := chart.RenderAverageTemperature(out(fileChart), analysis.AverageTemperatureByCity(table)); err != nil {
			return err
		}
	}

	logger.Info("outputs written", "dir", cfg.Output.Dir, "rows", table.Len())
	return nil
}
