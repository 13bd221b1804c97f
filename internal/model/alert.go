package model

// AlertKind distinguishes the two threshold conditions.
type AlertKind string

const (
	AlertNearHigh AlertKind = "NEAR_HIGH"
	AlertNearLow  AlertKind = "NEAR_LOW"
)

// AlertRule is one user-authored threshold pair. A series may carry
// between one and five rules.
type AlertRule struct {
	Period     int     `yaml:"period"`
	MaxDropPct float64 `yaml:"max_drop_pct"`
	MinRisePct float64 `yaml:"min_rise_pct"`
}

// Alert is one fired condition, ready for notification.
type Alert struct {
	Kind     AlertKind
	Period   int
	Price    int     // latest price
	RefPrice int     // the window high or low the rule compared against
	Pct      float64 // distance from RefPrice in percent
	Message  string
}
