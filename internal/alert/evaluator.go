package alert

import (
	"fmt"

	"stockwatch/internal/model"
)

// Evaluate checks every rule against the window analysis and returns
// the alerts that fire, in rule order with the near-high alert before
// the near-low alert per rule. Rules whose period has insufficient
// data are skipped silently. Multiple rules may fire in one pass and
// both conditions of a single rule may fire together; no
// deduplication is applied. Evaluate has no side effects; delivery is
// the caller's concern.
func Evaluate(analysis model.Analysis, rules []model.AlertRule, latestPrice int) []model.Alert {
	var alerts []model.Alert
	for _, rule := range rules {
		stats, ok := analysis[rule.Period]
		if !ok || stats.Insufficient {
			continue
		}

		if stats.PctBelowMax <= rule.MaxDropPct {
			alerts = append(alerts, model.Alert{
				Kind:     model.AlertNearHigh,
				Period:   rule.Period,
				Price:    latestPrice,
				RefPrice: stats.MaxPrice,
				Pct:      stats.PctBelowMax,
				Message:  formatNearHigh(rule.Period, latestPrice, stats),
			})
		}
		if stats.PctAboveMin <= rule.MinRisePct {
			alerts = append(alerts, model.Alert{
				Kind:     model.AlertNearLow,
				Period:   rule.Period,
				Price:    latestPrice,
				RefPrice: stats.MinPrice,
				Pct:      stats.PctAboveMin,
				Message:  formatNearLow(rule.Period, latestPrice, stats),
			})
		}
	}
	return alerts
}

func formatNearHigh(period, price int, stats model.WindowStats) string {
	if stats.AtHigh {
		return fmt.Sprintf("▼ %d-day high reached: now %d (period high %d)",
			period, price, stats.MaxPrice)
	}
	return fmt.Sprintf("▼ near %d-day high: now %d (%.2f%% below high %d)",
		period, price, stats.PctBelowMax, stats.MaxPrice)
}

func formatNearLow(period, price int, stats model.WindowStats) string {
	if stats.AtLow {
		return fmt.Sprintf("▲ %d-day low reached: now %d (period low %d)",
			period, price, stats.MinPrice)
	}
	return fmt.Sprintf("▲ near %d-day low: now %d (%.2f%% above low %d)",
		period, price, stats.PctAboveMin, stats.MinPrice)
}
