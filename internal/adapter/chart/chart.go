// Package chart renders the average-temperature bar chart.
package chart

import (
	"fmt"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/skybatch/weather-etl/internal/analysis"
)

// RenderAverageTemperature draws one bar per city, warmest first, with the
// value printed above each bar, and saves the plot to path. The image format
// follows the file extension (.png).
func RenderAverageTemperature(path string, cities []analysis.CityMean) error {
	p := plot.New()
	p.Title.Text = "Average Temperature by City"
	p.X.Label.Text = "City"
	p.Y.Label.Text = "Average Temperature (°C)"

	values := make(plotter.Values, len(cities))
	names := make([]string, len(cities))
	for i, c := range cities {
		values[i] = c.MeanTemperatureC
		names[i] = c.City
	}

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return fmt.Errorf("build bar chart: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 0.8
	p.X.Tick.Label.XAlign = -0.8
	p.X.Tick.Label.YAlign = -0.5

	if err := addValueLabels(p, cities); err != nil {
		return err
	}

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

// addValueLabels prints each bar's value centered at its top.
func addValueLabels(p *plot.Plot, cities []analysis.CityMean) error {
	xys := make(plotter.XYs, len(cities))
	texts := make([]string, len(cities))
	for i, c := range cities {
		xys[i] = plotter.XY{X: float64(i), Y: c.MeanTemperatureC}
		texts[i] = strconv.FormatFloat(c.MeanTemperatureC, 'f', 1, 64)
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return fmt.Errorf("build value labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YBottom
	}
	p.Add(labels)
	return nil
}
