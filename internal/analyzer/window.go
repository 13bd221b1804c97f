package analyzer

import "stockwatch/internal/model"

// Analyze computes rolling min/max statistics over the most recent
// `period` samples for each requested period, inclusive of the latest
// sample. Periods with fewer samples than requested yield the
// insufficient-data sentinel instead of an error.
func Analyze(series model.Series, periods []int) model.Analysis {
	analysis := make(model.Analysis, len(periods))
	for _, period := range periods {
		analysis[period] = analyzeWindow(series, period)
	}
	return analysis
}

func analyzeWindow(series model.Series, period int) model.WindowStats {
	if period <= 0 || len(series) < period {
		return model.WindowStats{Period: period, Insufficient: true}
	}

	window := series[len(series)-period:]
	latest := window[len(window)-1].Price

	maxPrice := window[0].Price
	minPrice := window[0].Price
	for _, s := range window[1:] {
		if s.Price > maxPrice {
			maxPrice = s.Price
		}
		if s.Price < minPrice {
			minPrice = s.Price
		}
	}

	stats := model.WindowStats{
		Period:   period,
		MaxPrice: maxPrice,
		MinPrice: minPrice,
		AtHigh:   latest == maxPrice,
		AtLow:    latest == minPrice,
	}
	if maxPrice != 0 {
		stats.PctBelowMax = (1 - float64(latest)/float64(maxPrice)) * 100
	}
	if minPrice != 0 {
		stats.PctAboveMin = (float64(latest)/float64(minPrice) - 1) * 100
	}
	return stats
}
