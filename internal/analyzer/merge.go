package analyzer

import "stockwatch/internal/model"

// MergeAction reports what Merge did with the new sample.
type MergeAction string

const (
	ActionAppend  MergeAction = "APPEND"
	ActionReplace MergeAction = "REPLACE"
)

// Merge folds a new sample into the series. If the last entry shares
// the new sample's calendar date it is replaced, so only the latest
// intraday price survives per day; otherwise the sample is appended.
// The input is not modified. Out-of-order late samples are appended
// as-is, no reordering is attempted.
func Merge(series model.Series, sample model.Sample) (model.Series, MergeAction) {
	if len(series) == 0 {
		return model.Series{sample}, ActionAppend
	}

	merged := make(model.Series, len(series), len(series)+1)
	copy(merged, series)

	if merged[len(merged)-1].SameDay(sample) {
		merged[len(merged)-1] = sample
		return merged, ActionReplace
	}
	return append(merged, sample), ActionAppend
}
