package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/skybatch/weather-etl/internal/config"
	"github.com/skybatch/weather-etl/internal/observability"
)

var (
	// Config flags, bound in init.
	cfgFile   string
	logLevel  string
	logFormat string

	// Populated in PersistentPreRunE for subcommands to use.
	rootLogger *slog.Logger
	appConfig  *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "weather-etl",
	Short: "Clean a weather observation CSV and emit statistics, a report, and a chart.",
	Long: `weather-etl ingests a CSV of weather observations, repairs and normalizes it
through a four-stage pipeline (load, clean, transform, validate), and writes
the cleaned dataset plus summary statistics, a markdown report of the warmest
cities, and a bar chart of average temperature per city.

The primary command is 'run'. 'validate' checks an input file against the
pipeline's invariants without writing outputs, and 'genmock' produces a
deliberately messy fixture CSV for testing.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// A .env file is optional; real environment variables win.
		_ = godotenv.Load()

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		if logFormat != "" {
			cfg.Logging.Format = logFormat
		}

		appConfig = cfg
		rootLogger = observability.NewLogger(cfg)
		return nil
	},
}

// Execute runs the root command. Errors have already been logged by the
// failing subcommand.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to YAML config file (defaults apply when unset)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "override log format (text, json)")
}
