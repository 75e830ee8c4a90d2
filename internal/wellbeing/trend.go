package wellbeing

// TrendDirection is the detected direction of a user's score history.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// trendWindow is the trailing slice length compared against the slice
// immediately preceding it.
const trendWindow = 7

// trendBand is the hysteresis band around zero change. Changes inside the
// band report stable, preventing noise-driven flapping. Historical reports
// depend on this exact value.
const trendBand = 0.2

// TrendSummary describes a user's score history at a glance.
type TrendSummary struct {
	Average            float64        `json:"average"`
	Trend              TrendDirection `json:"trend"`
	ChangeFromPrevious float64        `json:"changeFromPrevious"`
}

// AnalyzeTrend computes windowed statistics over a time-ordered score
// series (ascending by date, gaps allowed). The caller supplies the series
// already filtered to one user.
//
// The recent window is the last 7 entries; the previous window is the up to
// 7 entries before them. Histories too short to fill any previous window
// (fewer than 8 entries) report stable with zero change.
func AnalyzeTrend(scores []float64) TrendSummary {
	summary := TrendSummary{Trend: TrendStable}
	if len(scores) == 0 {
		return summary
	}
	summary.Average = mean(scores)
	if len(scores) < 2 {
		return summary
	}

	recentStart := len(scores) - trendWindow
	if recentStart < 0 {
		recentStart = 0
	}
	previousStart := recentStart - trendWindow
	if previousStart < 0 {
		previousStart = 0
	}
	previous := scores[previousStart:recentStart]
	if len(previous) == 0 {
		return summary
	}

	summary.ChangeFromPrevious = mean(scores[recentStart:]) - mean(previous)
	switch {
	case summary.ChangeFromPrevious > trendBand:
		summary.Trend = TrendUp
	case summary.ChangeFromPrevious < -trendBand:
		summary.Trend = TrendDown
	}
	return summary
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
