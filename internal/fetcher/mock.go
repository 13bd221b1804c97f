package fetcher

import (
	"context"
	"time"

	"stockwatch/internal/model"
)

// MockSource returns controllable fixed data for development and testing.
type MockSource struct {
	Price      int
	Label      string
	Historical model.Series
	Err        error
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) FetchCurrent(_ context.Context, _ string) (int, string, error) {
	if m.Err != nil {
		return 0, "", m.Err
	}
	label := m.Label
	if label == "" {
		label = "MockCorp"
	}
	return m.Price, label, nil
}

func (m *MockSource) FetchHistorical(_ context.Context, _ string, pages int) (model.Series, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Historical != nil {
		return m.Historical, nil
	}
	return generateMockSeries(m.Price, pages*10), nil
}

func generateMockSeries(basePrice, days int) model.Series {
	series := make(model.Series, days)
	for i := 0; i < days; i++ {
		day := time.Now().AddDate(0, 0, -(days - i))
		midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)
		delta := basePrice * (i - days/2) / 1000
		series[i] = model.Sample{Time: midnight, Price: basePrice + delta}
	}
	return series
}
