package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"stockwatch/internal/model"
)

func testSeries() model.Series {
	return model.Series{
		{Time: time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local), Price: 70100},
		{Time: time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local), Price: 69800},
		{Time: time.Date(2024, 1, 4, 15, 30, 0, 0, time.Local), Price: 71500},
	}
}

func TestRoundTrip(t *testing.T) {
	s := NewCSVStore(filepath.Join(t.TempDir(), "stock_data.csv"))

	want := testSeries()
	if err := s.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(got))
	}
	for i := range want {
		if !got[i].Time.Equal(want[i].Time) {
			t.Errorf("sample %d: timestamp %v != %v", i, got[i].Time, want[i].Time)
		}
		if got[i].Price != want[i].Price {
			t.Errorf("sample %d: price %d != %d", i, got[i].Price, want[i].Price)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	s := NewCSVStore(filepath.Join(t.TempDir(), "nope.csv"))
	series, err := s.Load()
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if len(series) != 0 {
		t.Fatalf("expected empty series, got %d samples", len(series))
	}
	if !s.Empty() {
		t.Error("Empty() should report true for a missing file")
	}
}

func TestLoad_SkipsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stock_data.csv")
	content := strings.Join([]string{
		"Timestamp,Price",
		"2024-01-02 00:00,70100",
		"not-a-date,70200",
		"2024-01-03 00:00,not-a-price",
		"2024-01-04 00:00,71500",
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	series, err := NewCSVStore(path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("expected 2 valid samples, got %d", len(series))
	}
	if series[1].Price != 71500 {
		t.Errorf("expected last price 71500, got %d", series[1].Price)
	}
}

func TestSave_WritesHeaderAndFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stock_data.csv")
	if err := NewCSVStore(path).Save(testSeries()[:1]); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "Timestamp,Price" {
		t.Errorf("expected header row, got %q", lines[0])
	}
	if lines[1] != "2024-01-02 00:00,70100" {
		t.Errorf("unexpected data row %q", lines[1])
	}
}

func TestSave_OverwritesCompletely(t *testing.T) {
	s := NewCSVStore(filepath.Join(t.TempDir(), "stock_data.csv"))
	if err := s.Save(testSeries()); err != nil {
		t.Fatal(err)
	}
	short := testSeries()[:1]
	if err := s.Save(short); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("expected full overwrite to 1 sample, got %d", len(got))
	}
}
