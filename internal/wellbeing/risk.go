package wellbeing

import "github.com/shouta0715/shunsaku-monorepo-sub001/internal/models"

// Risk thresholds are fixed constants of the design. Callers needing
// different cutoffs must wrap ClassifyRisk rather than mutate shared state.
const (
	lowRiskFloor    = 4.0
	mediumRiskFloor = 2.5
)

// ClassifyRisk maps a wellbeing score to its risk tier. Total over all
// finite scores; higher scores never classify as higher risk.
func ClassifyRisk(score float64) models.RiskLevel {
	switch {
	case score >= lowRiskFloor:
		return models.RiskLow
	case score >= mediumRiskFloor:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}
