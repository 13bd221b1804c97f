package render

import (
	"fmt"
	"os"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"stockwatch/internal/model"
)

// WriteChart draws the series as a PNG time-series chart with the
// period high and low as dashed reference lines. A non-zero period
// restricts the chart to the trailing `period` samples.
func WriteChart(path, title string, series model.Series, period int) error {
	if len(series) == 0 {
		return fmt.Errorf("no data to chart")
	}
	if period > 0 && len(series) > period {
		series = series[len(series)-period:]
	}

	times := make([]time.Time, len(series))
	prices := make([]float64, len(series))
	maxPrice := float64(series[0].Price)
	minPrice := float64(series[0].Price)
	for i, s := range series {
		times[i] = s.Time
		prices[i] = float64(s.Price)
		if prices[i] > maxPrice {
			maxPrice = prices[i]
		}
		if prices[i] < minPrice {
			minPrice = prices[i]
		}
	}

	edge := []time.Time{times[0], times[len(times)-1]}
	dashed := chart.Style{StrokeDashArray: []float64{5.0, 5.0}, StrokeWidth: 1.0}
	highStyle := dashed
	highStyle.StrokeColor = drawing.ColorRed
	lowStyle := dashed
	lowStyle.StrokeColor = drawing.ColorBlue

	graph := chart.Chart{
		Title:  title,
		Width:  1000,
		Height: 500,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat(model.TimeLayout),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "price",
				XValues: times,
				YValues: prices,
			},
			chart.TimeSeries{
				Name:    fmt.Sprintf("high %d", int(maxPrice)),
				Style:   highStyle,
				XValues: edge,
				YValues: []float64{maxPrice, maxPrice},
			},
			chart.TimeSeries{
				Name:    fmt.Sprintf("low %d", int(minPrice)),
				Style:   lowStyle,
				XValues: edge,
				YValues: []float64{minPrice, minPrice},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()
	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
