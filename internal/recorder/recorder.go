package recorder

import "stockwatch/internal/model"

// CycleRecord captures one completed update pipeline run.
type CycleRecord struct {
	RunID       string
	Symbol      string
	Label       string
	Price       int
	SeriesLen   int
	MergeAction string
	AlertCount  int
}

// AlertRecord captures one fired alert.
type AlertRecord struct {
	RunID string
	Alert model.Alert
}

// Recorder persists update history for later inspection.
type Recorder interface {
	RecordCycle(rec *CycleRecord) error
	RecordAlert(rec *AlertRecord) error
	Close() error
}
