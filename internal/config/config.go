// Package config provides configuration for the weather ETL pipeline.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/skybatch/weather-etl/internal/domain"
)

// Configuration validation errors.
var (
	ErrMissingInputPath  = errors.New("input.path is required")
	ErrMissingOutputDir  = errors.New("output.dir is required")
	ErrNoDateFormats     = errors.New("input.date_formats must list at least one layout")
	ErrIncompleteColumns = errors.New("input.columns must map city, date, temperature_celsius and weather_condition")
)

// Config holds all pipeline settings, read from a YAML file with environment
// variable overrides applied on top.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig describes the raw CSV and how to interpret it.
type InputConfig struct {
	Path string `yaml:"path"`

	// Columns maps canonical column roles to the header names used in the
	// input file. Header names are configuration, not hard-coded.
	Columns ColumnsConfig `yaml:"columns"`

	// DateFormats is the ordered list of Go time layouts tried against each
	// date cell. First match wins, per record.
	DateFormats []string `yaml:"date_formats"`

	// MissingValues are cell contents treated as missing, compared after
	// trimming whitespace.
	MissingValues []string `yaml:"missing_values"`
}

// ColumnsConfig names the input header for each canonical column. Humidity
// and wind speed are optional; the rest are required.
type ColumnsConfig struct {
	City               string `yaml:"city"`
	Date               string `yaml:"date"`
	TemperatureCelsius string `yaml:"temperature_celsius"`
	HumidityPercent    string `yaml:"humidity_percent"`
	WindSpeedKPH       string `yaml:"wind_speed_kph"`
	WeatherCondition   string `yaml:"weather_condition"`
}

// Mapping returns the configured header name per domain column, omitting
// columns with no configured header.
func (c ColumnsConfig) Mapping() map[domain.Column]string {
	m := map[domain.Column]string{}
	set := func(col domain.Column, header string) {
		if header != "" {
			m[col] = header
		}
	}
	set(domain.ColumnCity, c.City)
	set(domain.ColumnDate, c.Date)
	set(domain.ColumnTemperatureC, c.TemperatureCelsius)
	set(domain.ColumnHumidity, c.HumidityPercent)
	set(domain.ColumnWindSpeed, c.WindSpeedKPH)
	set(domain.ColumnCondition, c.WeatherCondition)
	return m
}

// OutputConfig describes where results are written. Files are fully
// regenerated each run; existing outputs are overwritten.
type OutputConfig struct {
	Dir   string `yaml:"dir"`
	Chart bool   `yaml:"chart"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

// Default returns the configuration used when no file is given, matching the
// canonical weather CSV layout.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Path: "data/weather_data.csv",
			Columns: ColumnsConfig{
				City:               "city",
				Date:               "date",
				TemperatureCelsius: "temperature_celsius",
				HumidityPercent:    "humidity_percent",
				WindSpeedKPH:       "wind_speed_kph",
				WeatherCondition:   "weather_condition",
			},
			DateFormats: []string{
				"2006-01-02",
				"01/02/2006",
				"2006/01/02",
				"Jan 2, 2006",
			},
			MissingValues: []string{"", "NA", "N/A", "NaN", "None", "unknown", "Unknown"},
		},
		Output: OutputConfig{
			Dir:   "outputs",
			Chart: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the YAML file at path, layered over the
// defaults, then applies environment overrides and validates the result.
// An empty path loads defaults and environment overrides only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides lets the environment win over the file for the settings
// that vary between local runs and CI.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WEATHER_INPUT"); v != "" {
		cfg.Input.Path = v
	}
	if v := os.Getenv("WEATHER_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

// Validate checks the configuration for completeness.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return ErrMissingInputPath
	}
	if c.Output.Dir == "" {
		return ErrMissingOutputDir
	}
	if len(c.Input.DateFormats) == 0 {
		return ErrNoDateFormats
	}

	mapping := c.Input.Columns.Mapping()
	for _, col := range domain.RequiredColumns() {
		if mapping[col] == "" {
			return ErrIncompleteColumns
		}
	}

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
