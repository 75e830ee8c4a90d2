package wellbeing

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAnalyzeTrendShortHistories(t *testing.T) {
	cases := []struct {
		name    string
		scores  []float64
		average float64
	}{
		{"empty", nil, 0},
		{"single point", []float64{3.2}, 3.2},
		{"two points", []float64{3.0, 4.0}, 3.5},
		{"seven points", []float64{1, 2, 3, 4, 5, 4, 3}, 22.0 / 7},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := AnalyzeTrend(c.scores)
			if got.Trend != TrendStable {
				t.Fatalf("trend = %v, want stable", got.Trend)
			}
			if got.ChangeFromPrevious != 0 {
				t.Fatalf("changeFromPrevious = %v, want 0", got.ChangeFromPrevious)
			}
			if !almostEqual(got.Average, c.average) {
				t.Fatalf("average = %v, want %v", got.Average, c.average)
			}
		})
	}
}

func TestAnalyzeTrendDirections(t *testing.T) {
	repeat := func(v float64, n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = v
		}
		return out
	}

	cases := []struct {
		name   string
		scores []float64
		trend  TrendDirection
		change float64
	}{
		{
			name:   "improving beyond the band",
			scores: append(repeat(2.0, 7), repeat(3.0, 7)...),
			trend:  TrendUp,
			change: 1.0,
		},
		{
			name:   "declining beyond the band",
			scores: append(repeat(4.0, 7), repeat(3.0, 7)...),
			trend:  TrendDown,
			change: -1.0,
		},
		{
			name:   "change inside the hysteresis band stays stable",
			scores: append(repeat(3.0, 7), repeat(3.1, 7)...),
			trend:  TrendStable,
			change: 0.1,
		},
		{
			name:   "change just under the band stays stable",
			scores: append(repeat(3.0, 7), repeat(3.125, 7)...),
			trend:  TrendStable,
			change: 0.125,
		},
		{
			name: "partial previous window still compares",
			// 8 entries: previous window holds a single score.
			scores: []float64{2.0, 3.0, 3.0, 3.0, 3.0, 3.0, 3.0, 3.0},
			trend:  TrendUp,
			change: 1.0,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := AnalyzeTrend(c.scores)
			if got.Trend != c.trend {
				t.Fatalf("trend = %v, want %v", got.Trend, c.trend)
			}
			if !almostEqual(got.ChangeFromPrevious, c.change) {
				t.Fatalf("changeFromPrevious = %v, want %v", got.ChangeFromPrevious, c.change)
			}
		})
	}
}

func TestAnalyzeTrendUsesTrailingWindowsOnly(t *testing.T) {
	// Ancient history beyond offset -14 must not affect the comparison.
	scores := []float64{5, 5, 5, 5, 5, 5}
	scores = append(scores, []float64{2, 2, 2, 2, 2, 2, 2}...) // previous
	scores = append(scores, []float64{3, 3, 3, 3, 3, 3, 3}...) // recent

	got := AnalyzeTrend(scores)
	if got.Trend != TrendUp {
		t.Fatalf("trend = %v, want up", got.Trend)
	}
	if !almostEqual(got.ChangeFromPrevious, 1.0) {
		t.Fatalf("changeFromPrevious = %v, want 1.0", got.ChangeFromPrevious)
	}
}
