// Package wellbeing holds the pure scoring pipeline: weighted score
// computation, risk classification, and trend detection. Nothing here
// touches a store or holds mutable state, so every function is safe to
// call concurrently.
package wellbeing

import (
	"math"

	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/errs"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/models"
)

// ComputeTotalScore turns one submission into a single weighted score,
// rounded to one decimal.
//
// The denominator is always the full catalog weight sum, independent of
// which questions were actually answered, so partial submissions score
// proportionally lower. Responses referencing unknown questions contribute
// nothing to the numerator.
func ComputeTotalScore(responses []models.Response, catalog *models.Catalog) (float64, error) {
	if len(responses) == 0 {
		return 0, errs.Invalid("survey must contain at least one response")
	}
	if catalog == nil || len(catalog.Questions) == 0 {
		return 0, errs.Invalid("question catalog is empty")
	}
	for _, q := range catalog.Questions {
		if q.Weight <= 0 {
			return 0, errs.Invalid("question " + q.ID + " has a non-positive weight")
		}
	}

	var weighted float64
	for _, r := range responses {
		if w, ok := catalog.Weight(r.QuestionID); ok {
			weighted += r.Score * w
		}
	}

	return round1(weighted / catalog.TotalWeight()), nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
