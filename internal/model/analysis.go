package model

// WindowStats holds the rolling min/max analysis for one period.
// Insufficient marks the "not enough samples" state; all numeric
// fields are meaningless when it is set.
type WindowStats struct {
	Period       int
	Insufficient bool
	MaxPrice     int
	MinPrice     int
	// PctBelowMax is how far the latest price sits below the window
	// high, in percent. Positive when below the high.
	PctBelowMax float64
	// PctAboveMin is how far the latest price sits above the window
	// low, in percent. Positive when above the low.
	PctAboveMin float64
	// AtHigh and AtLow are exact-equality flags, distinct from the
	// percentage comparisons.
	AtHigh bool
	AtLow  bool
}

// Analysis maps each requested period to its window statistics.
type Analysis map[int]WindowStats
