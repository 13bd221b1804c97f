package render

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"stockwatch/internal/model"
)

// Summary formats the current analysis as a text report, one block
// per period in ascending order. Windows without enough samples show
// N/A; exact high/low matches are called out instead of a percentage.
func Summary(label, symbol string, series model.Series, analysis model.Analysis, periods []int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s (%s)\n", label, symbol))

	latest, ok := series.Latest()
	if !ok {
		b.WriteString("last update: N/A\nno data\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("last update: %s\n", latest.Time.Format(model.TimeLayout)))
	b.WriteString(fmt.Sprintf("current price: %d\n", latest.Price))

	sorted := append([]int(nil), periods...)
	sort.Ints(sorted)

	for _, period := range sorted {
		stats, found := analysis[period]
		b.WriteString(fmt.Sprintf("--- last %d days ---\n", period))
		if !found || stats.Insufficient {
			b.WriteString("high: N/A\nlow: N/A (insufficient data)\n")
			continue
		}
		b.WriteString(fmt.Sprintf("high: %d\n", stats.MaxPrice))
		if stats.AtHigh {
			b.WriteString("at period high\n")
		} else {
			b.WriteString(fmt.Sprintf("below high: %.2f%%\n", stats.PctBelowMax))
		}
		b.WriteString(fmt.Sprintf("low: %d\n", stats.MinPrice))
		if stats.AtLow {
			b.WriteString("at period low\n")
		} else {
			b.WriteString(fmt.Sprintf("above low: %.2f%%\n", stats.PctAboveMin))
		}
	}
	return b.String()
}

// FileRenderer writes the trend chart PNG next to the data file and
// logs the text summary after every successful cycle.
type FileRenderer struct {
	ChartPath string
	Symbol    string
	Periods   []int
}

func (r *FileRenderer) Render(label string, series model.Series, analysis model.Analysis) error {
	summary := Summary(label, r.Symbol, series, analysis, r.Periods)
	for _, line := range strings.Split(strings.TrimRight(summary, "\n"), "\n") {
		log.Printf("[INFO] %s", line)
	}

	if r.ChartPath == "" {
		return nil
	}
	title := fmt.Sprintf("%s (%s) price trend", label, r.Symbol)
	return WriteChart(r.ChartPath, title, series, 0)
}
