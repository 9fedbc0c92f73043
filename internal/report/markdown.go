// Package report renders the markdown analysis report.
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/skybatch/weather-etl/internal/analysis"
	"github.com/skybatch/weather-etl/internal/domain"
)

// TopCitiesMarkdown renders the warmest-cities report. The timestamp comes
// from the domain clock so tests can freeze it.
func TopCitiesMarkdown(cities []analysis.CityMean) string {
	var sb strings.Builder
	sb.WriteString("# Weather Data Analysis Report\n\n")
	sb.WriteString(fmt.Sprintf("## Top %d Warmest Cities\n\n", len(cities)))

	rows := make([][]string, 0, len(cities))
	for i, c := range cities {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			c.City,
			fmt.Sprintf("%.2f°C", c.MeanTemperatureC),
		})
	}
	sb.WriteString(renderTable([]string{"Rank", "City", "Average Temperature (°C)"}, rows))

	sb.WriteString(fmt.Sprintf("\nGenerated: %s\n", domain.Now().UTC().Format("2006-01-02 15:04 UTC")))
	return sb.String()
}

// WriteTopCities writes the report to path, overwriting any previous run.
func WriteTopCities(path string, cities []analysis.CityMean) error {
	if err := os.WriteFile(path, []byte(TopCitiesMarkdown(cities)), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// renderTable builds a markdown table with cells padded to equal display
// width. Widths use runewidth so city names outside ASCII still line up.
func renderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := runewidth.StringWidth(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		sb.WriteString("|")
		for i := range widths {
			content := ""
			if i < len(cells) {
				content = cells[i]
			}
			padding := widths[i] - runewidth.StringWidth(content)
			sb.WriteString(" " + content + strings.Repeat(" ", padding) + " |")
		}
		sb.WriteString("\n")
	}

	writeRow(header)

	sb.WriteString("|")
	for i := range widths {
		sb.WriteString(" " + strings.Repeat("-", widths[i]) + " |")
	}
	sb.WriteString("\n")

	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}
