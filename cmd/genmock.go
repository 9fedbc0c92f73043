package cmd

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var (
	genmockOut  string
	genmockRows int
	genmockSeed int64
)

var genmockCmd = &cobra.Command{
	Use:   "genmock",
	Short: "Generate a deliberately messy weather CSV fixture",
	Long: `genmock writes a synthetic weather observation CSV containing the kinds of
dirt the pipeline is built to handle: mixed date formats, unparseable dates,
missing city and numeric cells, inconsistent condition casing, and unknown
conditions.
Output is deterministic for a given seed.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := writeMockCSV(genmockOut, genmockRows, genmockSeed); err != nil {
			return err
		}
		rootLogger.Info("mock fixture written", "path", genmockOut, "rows", genmockRows, "seed", genmockSeed)
		return nil
	},
}

func init() {
	genmockCmd.Flags().StringVar(&genmockOut, "out", "data/weather_data.csv", "output CSV path")
	genmockCmd.Flags().IntVar(&genmockRows, "rows", 200, "number of data rows")
	genmockCmd.Flags().Int64Var(&genmockSeed, "seed", 42, "random seed")
	rootCmd.AddCommand(genmockCmd)
}

var (
	mockCities = []string{"Paris", "Rome", "Berlin", "Madrid", "Oslo", "Athens", "Dublin", "Lisbon"}

	// Condition spellings as they show up in real exports, canonical and not.
	mockConditions = []string{
		"Sunny", "sunny", "  Sunny ", "clear",
		"Cloudy", "overcast", "partly cloudy",
		"Rainy", "rain", "drizzle",
		"Snowy", "snow",
		"Stormy", "thunderstorm",
		"Foggy", "mist",
		"unknown", "  unknown ", "",
	}

	mockDateLayouts = []string{"2006-01-02", "01/02/2006", "2006/01/02", "Jan 2, 2006"}
)

func writeMockCSV(path string, rows int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create fixture: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"city", "date", "temperature_celsius", "humidity_percent", "wind_speed_kph", "weather_condition"}
	if err := w.Write(header); err != nil {
		return err
	}

	base := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < rows; i++ {
		city := mockCities[rng.Intn(len(mockCities))]
		// A few rows per hundred lose their city.
		if rng.Intn(100) < 2 {
			city = ""
		}
		date := base.AddDate(0, 0, rng.Intn(365))

		dateCell := date.Format(mockDateLayouts[rng.Intn(len(mockDateLayouts))])
		// A few rows per hundred get an unparseable date.
		if rng.Intn(100) < 3 {
			dateCell = "not-a-date"
		}

		row := []string{
			city,
			dateCell,
			mockNumeric(rng, -5, 35),
			mockNumeric(rng, 20, 100),
			mockNumeric(rng, 0, 60),
			mockConditions[rng.Intn(len(mockConditions))],
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}
	return f.Close()
}

// mockNumeric returns a value in [lo, hi) one decimal wide, with roughly one
// cell in ten missing or malformed.
func mockNumeric(rng *rand.Rand, lo, hi float64) string {
	switch rng.Intn(10) {
	case 0:
		return ""
	case 1:
		return "N/A"
	default:
		v := lo + rng.Float64()*(hi-lo)
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
}
