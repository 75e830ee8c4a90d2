// Package surveys wires the scoring pipeline to the stores: it validates a
// submission, scores and classifies it, persists the survey and its derived
// score record together, and exposes the per-user history views.
package surveys

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/errs"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/models"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/wellbeing"
)

// CatalogProvider hands out the question catalog. The returned catalog must
// be stable for the duration of one scoring computation.
type CatalogProvider interface {
	Catalog() *models.Catalog
}

// StaticCatalog serves a catalog loaded once at startup.
type StaticCatalog struct {
	C *models.Catalog
}

func (s StaticCatalog) Catalog() *models.Catalog { return s.C }

// SurveyStore persists submissions. CreateWithScore writes the survey and
// its score record in one transaction and returns a conflict error for a
// duplicate (user, survey date) pair.
type SurveyStore interface {
	CreateWithScore(ctx context.Context, survey *models.SurveyRecord, score *models.ScoreRecord) error
	HasSubmission(ctx context.Context, userID uint, date time.Time) (bool, error)
}

// ScoreStore reads the append-only score history, ascending by date.
type ScoreStore interface {
	ListByUser(ctx context.Context, userID uint) ([]models.ScoreRecord, error)
	LatestScore(ctx context.Context, userID uint) (*models.ScoreRecord, error)
}

// Escalator is notified after each persisted score so alert producers can
// react to tier changes. Implementations must not fail the submission.
type Escalator interface {
	ScoreRecorded(ctx context.Context, previous *models.ScoreRecord, current models.ScoreRecord)
}

// RiskSummary is the caller-facing "how is this user doing today" view.
type RiskSummary struct {
	RiskLevel models.RiskLevel `json:"riskLevel"`
	Score     float64          `json:"score"`
	Date      time.Time        `json:"date"`
}

type Service struct {
	catalog   CatalogProvider
	surveys   SurveyStore
	scores    ScoreStore
	escalator Escalator
	log       *zap.Logger
	now       func() time.Time
}

func NewService(catalog CatalogProvider, surveys SurveyStore, scores ScoreStore, escalator Escalator, log *zap.Logger) *Service {
	return &Service{
		catalog:   catalog,
		surveys:   surveys,
		scores:    scores,
		escalator: escalator,
		log:       log,
		now:       time.Now,
	}
}

// Submit scores one daily submission and persists it. A second submission
// for the same calendar day surfaces as a conflict, never a silent
// overwrite.
func (s *Service) Submit(ctx context.Context, userID uint, responses []models.Response) (*models.SurveyRecord, error) {
	catalog := s.catalog.Catalog()
	if err := validateResponses(responses, catalog); err != nil {
		return nil, err
	}

	total, err := wellbeing.ComputeTotalScore(responses, catalog)
	if err != nil {
		return nil, err
	}
	risk := wellbeing.ClassifyRisk(total)

	// Read the previous record before inserting so the escalation hook can
	// compare tiers across the transition.
	previous, err := s.scores.LatestScore(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	today := now.Truncate(24 * time.Hour)

	survey := &models.SurveyRecord{
		UserID:      userID,
		SurveyDate:  today,
		TotalScore:  total,
		SubmittedAt: now,
		Responses:   responses,
	}
	score := &models.ScoreRecord{
		UserID:     userID,
		ScoreDate:  today,
		TotalScore: total,
		RiskLevel:  risk,
	}
	if err := s.surveys.CreateWithScore(ctx, survey, score); err != nil {
		return nil, err
	}

	s.log.Info("Survey submitted",
		zap.Uint("userID", userID),
		zap.Float64("totalScore", total),
		zap.String("riskLevel", string(risk)),
	)

	if s.escalator != nil {
		s.escalator.ScoreRecorded(ctx, previous, *score)
	}
	return survey, nil
}

// SubmittedToday reports whether the user already has a submission for the
// current calendar day.
func (s *Service) SubmittedToday(ctx context.Context, userID uint) (bool, error) {
	return s.surveys.HasSubmission(ctx, userID, s.now().UTC().Truncate(24*time.Hour))
}

// History returns the user's score records ascending by date. A user with
// no history gets an empty slice.
func (s *Service) History(ctx context.Context, userID uint) ([]models.ScoreRecord, error) {
	return s.scores.ListByUser(ctx, userID)
}

// TrendReport runs the trend analyzer over the user's full history.
func (s *Service) TrendReport(ctx context.Context, userID uint) (wellbeing.TrendSummary, error) {
	records, err := s.scores.ListByUser(ctx, userID)
	if err != nil {
		return wellbeing.TrendSummary{}, err
	}
	scores := make([]float64, len(records))
	for i, r := range records {
		scores[i] = r.TotalScore
	}
	return wellbeing.AnalyzeTrend(scores), nil
}

// Summary returns the user's latest risk standing. Users with no history
// default to the same neutral standing the team roll-up uses.
func (s *Service) Summary(ctx context.Context, userID uint) (*RiskSummary, error) {
	latest, err := s.scores.LatestScore(ctx, userID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return &RiskSummary{
			RiskLevel: models.RiskMedium,
			Score:     0,
			Date:      s.now().UTC().Truncate(24 * time.Hour),
		}, nil
	}
	return &RiskSummary{
		RiskLevel: wellbeing.ClassifyRisk(latest.TotalScore),
		Score:     latest.TotalScore,
		Date:      latest.ScoreDate,
	}, nil
}

func validateResponses(responses []models.Response, catalog *models.Catalog) error {
	if len(responses) == 0 {
		return errs.Invalid("survey must contain at least one response")
	}
	if catalog == nil || len(catalog.Questions) == 0 {
		return errs.Invalid("question catalog is empty")
	}
	if len(responses) > len(catalog.Questions) {
		return errs.Invalid("survey contains more responses than catalog questions")
	}
	matched := false
	for _, r := range responses {
		if _, ok := catalog.Weight(r.QuestionID); ok {
			matched = true
			break
		}
	}
	if !matched {
		return errs.Invalid("no response references a known question")
	}
	return nil
}
