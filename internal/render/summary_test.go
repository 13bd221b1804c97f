package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"stockwatch/internal/model"
)

func demoSeries() model.Series {
	base := time.Date(2024, 1, 1, 15, 30, 0, 0, time.Local)
	prices := []int{70100, 69800, 71500}
	series := make(model.Series, len(prices))
	for i, p := range prices {
		series[i] = model.Sample{Time: base.AddDate(0, 0, i), Price: p}
	}
	return series
}

func TestSummary(t *testing.T) {
	series := demoSeries()
	analysis := model.Analysis{
		3:  {Period: 3, MaxPrice: 71500, MinPrice: 69800, AtHigh: true, PctAboveMin: 2.44},
		20: {Period: 20, Insufficient: true},
	}

	got := Summary("SamsungElec", "005930", series, analysis, []int{20, 3})

	for _, want := range []string{
		"SamsungElec (005930)",
		"current price: 71500",
		"--- last 3 days ---",
		"at period high",
		"above low: 2.44%",
		"--- last 20 days ---",
		"low: N/A (insufficient data)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}

	// Periods render ascending regardless of input order.
	if strings.Index(got, "last 3 days") > strings.Index(got, "last 20 days") {
		t.Error("periods should be sorted ascending")
	}
}

func TestSummary_EmptySeries(t *testing.T) {
	got := Summary("Unknown", "005930", nil, model.Analysis{}, []int{20})
	if !strings.Contains(got, "no data") {
		t.Errorf("expected empty-series summary, got:\n%s", got)
	}
}

func TestWriteChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trend.png")
	if err := WriteChart(path, "trend", demoSeries(), 0); err != nil {
		t.Fatalf("write chart: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("chart file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}
}

func TestWriteChart_NoData(t *testing.T) {
	if err := WriteChart(filepath.Join(t.TempDir(), "x.png"), "trend", nil, 0); err == nil {
		t.Fatal("expected error for empty series")
	}
}
