package model

import "time"

// TimeLayout is the on-disk timestamp format, minute resolution.
const TimeLayout = "2006-01-02 15:04"

// Sample is one observed price at a point in time. Price is a whole
// currency unit (KRW), always positive.
type Sample struct {
	Time  time.Time
	Price int
}

// SameDay reports whether two samples fall on the same calendar date.
func (s Sample) SameDay(o Sample) bool {
	y1, m1, d1 := s.Time.Date()
	y2, m2, d2 := o.Time.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Series is the full price history for one symbol, ascending by time,
// at most one sample per calendar date after merging.
type Series []Sample

// Latest returns the most recent sample. ok is false for an empty series.
func (s Series) Latest() (Sample, bool) {
	if len(s) == 0 {
		return Sample{}, false
	}
	return s[len(s)-1], true
}
