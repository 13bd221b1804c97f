package store

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"stockwatch/internal/model"
)

// CSVStore persists the price series as a two-column CSV file with a
// "Timestamp,Price" header. Writers always rewrite the complete file,
// via a temp file renamed over the target so a concurrent reader
// never observes a truncated series.
type CSVStore struct {
	Path string
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{Path: path}
}

// Load reads the series from disk. A missing or empty file yields an
// empty series without error. Rows that fail to parse are skipped.
func (s *CSVStore) Load() (model.Series, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open series file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read series file: %w", err)
	}

	var series model.Series
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 2 {
			continue
		}
		ts, err := time.ParseInLocation(model.TimeLayout, row[0], time.Local)
		if err != nil {
			log.Printf("[WARN] skipping row %d: bad timestamp %q", i+1, row[0])
			continue
		}
		price, err := strconv.Atoi(row[1])
		if err != nil {
			log.Printf("[WARN] skipping row %d: bad price %q", i+1, row[1])
			continue
		}
		series = append(series, model.Sample{Time: ts, Price: price})
	}
	return series, nil
}

// Save overwrites the series file with the full series.
func (s *CSVStore) Save(series model.Series) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".stock_data-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write([]string{"Timestamp", "Price"}); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, sample := range series {
		row := []string{sample.Time.Format(model.TimeLayout), strconv.Itoa(sample.Price)}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush series: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("replace series file: %w", err)
	}
	return nil
}

// Empty reports whether the series file is absent or has no data rows.
func (s *CSVStore) Empty() bool {
	info, err := os.Stat(s.Path)
	if err != nil || info.Size() == 0 {
		return true
	}
	series, err := s.Load()
	return err != nil || len(series) == 0
}
