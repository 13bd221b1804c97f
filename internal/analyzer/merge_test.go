package analyzer

import (
	"testing"
	"time"

	"stockwatch/internal/model"
)

func sampleAt(day string, hour int, price int) model.Sample {
	t, err := time.ParseInLocation("2006-01-02", day, time.Local)
	if err != nil {
		panic(err)
	}
	return model.Sample{Time: t.Add(time.Duration(hour) * time.Hour), Price: price}
}

func TestMerge_EmptySeries(t *testing.T) {
	merged, action := Merge(nil, sampleAt("2024-01-01", 9, 100))
	if len(merged) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(merged))
	}
	if action != ActionAppend {
		t.Errorf("expected append, got %s", action)
	}
	if merged[0].Price != 100 {
		t.Errorf("expected price 100, got %d", merged[0].Price)
	}
}

func TestMerge_SameDayReplaces(t *testing.T) {
	series := model.Series{sampleAt("2024-01-01", 9, 100)}

	series, action := Merge(series, sampleAt("2024-01-01", 10, 110))
	if len(series) != 1 || action != ActionReplace {
		t.Fatalf("expected single-entry replace, got len=%d action=%s", len(series), action)
	}

	series, action = Merge(series, sampleAt("2024-01-01", 15, 120))
	if len(series) != 1 || action != ActionReplace {
		t.Fatalf("expected single-entry replace, got len=%d action=%s", len(series), action)
	}
	if series[0].Price != 120 {
		t.Errorf("expected latest intraday price 120 to survive, got %d", series[0].Price)
	}
	if series[0].Time.Hour() != 15 {
		t.Errorf("expected replacing sample's timestamp to survive, got hour %d", series[0].Time.Hour())
	}
}

func TestMerge_NewDayAppends(t *testing.T) {
	series := model.Series{
		sampleAt("2024-01-01", 15, 100),
		sampleAt("2024-01-02", 15, 105),
	}
	merged, action := Merge(series, sampleAt("2024-01-03", 9, 110))
	if len(merged) != 3 || action != ActionAppend {
		t.Fatalf("expected append to len 3, got len=%d action=%s", len(merged), action)
	}
	last, _ := merged.Latest()
	if last.Price != 110 {
		t.Errorf("expected new sample at the end, got price %d", last.Price)
	}
}

func TestMerge_DoesNotModifyInput(t *testing.T) {
	series := model.Series{sampleAt("2024-01-01", 9, 100)}
	Merge(series, sampleAt("2024-01-01", 10, 999))
	if series[0].Price != 100 {
		t.Errorf("input series was modified: price %d", series[0].Price)
	}
}

func TestMerge_OrderPreserved(t *testing.T) {
	var series model.Series
	days := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"}
	for i, day := range days {
		series, _ = Merge(series, sampleAt(day, 15, 100+i))
	}
	for i := 1; i < len(series); i++ {
		if !series[i-1].Time.Before(series[i].Time) {
			t.Fatalf("series not ascending at index %d", i)
		}
	}
}
