package surveys

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/errs"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/models"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/wellbeing"
)

type staticCatalog struct{ catalog *models.Catalog }

func (s staticCatalog) Catalog() *models.Catalog { return s.catalog }

type stubSurveyStore struct {
	surveys []*models.SurveyRecord
	scores  []*models.ScoreRecord
}

func (s *stubSurveyStore) CreateWithScore(_ context.Context, survey *models.SurveyRecord, score *models.ScoreRecord) error {
	for _, existing := range s.surveys {
		if existing.UserID == survey.UserID && existing.SurveyDate.Equal(survey.SurveyDate) {
			return errs.Conflict("survey already submitted for this date")
		}
	}
	s.surveys = append(s.surveys, survey)
	s.scores = append(s.scores, score)
	return nil
}

func (s *stubSurveyStore) HasSubmission(_ context.Context, userID uint, date time.Time) (bool, error) {
	for _, existing := range s.surveys {
		if existing.UserID == userID && existing.SurveyDate.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

type stubScoreStore struct {
	records []models.ScoreRecord
}

func (s *stubScoreStore) ListByUser(_ context.Context, userID uint) ([]models.ScoreRecord, error) {
	out := []models.ScoreRecord{}
	for _, r := range s.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubScoreStore) LatestScore(_ context.Context, userID uint) (*models.ScoreRecord, error) {
	var latest *models.ScoreRecord
	for i := range s.records {
		r := s.records[i]
		if r.UserID != userID {
			continue
		}
		if latest == nil || r.ScoreDate.After(latest.ScoreDate) {
			latest = &s.records[i]
		}
	}
	return latest, nil
}

type recordingEscalator struct {
	previous *models.ScoreRecord
	current  models.ScoreRecord
	calls    int
}

func (e *recordingEscalator) ScoreRecorded(_ context.Context, previous *models.ScoreRecord, current models.ScoreRecord) {
	e.previous = previous
	e.current = current
	e.calls++
}

func fixtureService(scoreStore *stubScoreStore) (*Service, *stubSurveyStore, *recordingEscalator) {
	catalog := &models.Catalog{Questions: []models.Question{
		{ID: "q1", Weight: 1},
		{ID: "q2", Weight: 1},
	}}
	surveyStore := &stubSurveyStore{}
	escalator := &recordingEscalator{}
	svc := NewService(staticCatalog{catalog}, surveyStore, scoreStore, escalator, zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2025, 6, 11, 10, 30, 0, 0, time.UTC)
	}
	return svc, surveyStore, escalator
}

func TestSubmitScoresAndPersists(t *testing.T) {
	svc, store, escalator := fixtureService(&stubScoreStore{})

	record, err := svc.Submit(context.Background(), 7, []models.Response{
		{QuestionID: "q1", Score: 5},
		{QuestionID: "q2", Score: 3},
	})
	if err != nil {
		t.Fatal(err)
	}
	if record.TotalScore != 4.0 {
		t.Fatalf("totalScore = %v, want 4.0", record.TotalScore)
	}
	wantDate := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	if !record.SurveyDate.Equal(wantDate) {
		t.Fatalf("surveyDate = %v, want %v", record.SurveyDate, wantDate)
	}

	if len(store.scores) != 1 {
		t.Fatalf("%d score records persisted, want 1", len(store.scores))
	}
	if store.scores[0].RiskLevel != models.RiskLow {
		t.Fatalf("riskLevel = %v, want low", store.scores[0].RiskLevel)
	}

	if escalator.calls != 1 {
		t.Fatalf("escalator called %d times, want 1", escalator.calls)
	}
	if escalator.previous != nil {
		t.Fatalf("previous = %+v, want nil for first submission", escalator.previous)
	}
	if escalator.current.RiskLevel != models.RiskLow {
		t.Fatalf("escalator current = %+v", escalator.current)
	}
}

func TestSubmitDuplicateDayConflicts(t *testing.T) {
	svc, _, _ := fixtureService(&stubScoreStore{})
	responses := []models.Response{{QuestionID: "q1", Score: 3}, {QuestionID: "q2", Score: 3}}

	if _, err := svc.Submit(context.Background(), 7, responses); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Submit(context.Background(), 7, responses)
	if !errs.IsCode(err, errs.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc, _, escalator := fixtureService(&stubScoreStore{})

	cases := []struct {
		name      string
		responses []models.Response
	}{
		{"empty submission", nil},
		{"more responses than questions", []models.Response{
			{QuestionID: "q1", Score: 3},
			{QuestionID: "q2", Score: 3},
			{QuestionID: "q3", Score: 3},
		}},
		{"only unknown questions", []models.Response{
			{QuestionID: "ghost", Score: 3},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), 7, c.responses)
			if !errs.IsCode(err, errs.CodeInvalid) {
				t.Fatalf("expected invalid-input, got %v", err)
			}
		})
	}
	if escalator.calls != 0 {
		t.Fatalf("escalator fired %d times for rejected submissions", escalator.calls)
	}
}

func TestSubmitPassesPreviousRecordToEscalator(t *testing.T) {
	scoreStore := &stubScoreStore{records: []models.ScoreRecord{
		{UserID: 7, ScoreDate: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), TotalScore: 4.2, RiskLevel: models.RiskLow},
	}}
	svc, _, escalator := fixtureService(scoreStore)

	_, err := svc.Submit(context.Background(), 7, []models.Response{
		{QuestionID: "q1", Score: 2},
		{QuestionID: "q2", Score: 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	if escalator.previous == nil || escalator.previous.TotalScore != 4.2 {
		t.Fatalf("previous = %+v", escalator.previous)
	}
	if escalator.current.RiskLevel != models.RiskHigh {
		t.Fatalf("current tier = %v, want high", escalator.current.RiskLevel)
	}
}

func TestSubmittedToday(t *testing.T) {
	svc, _, _ := fixtureService(&stubScoreStore{})

	done, err := svc.SubmittedToday(context.Background(), 7)
	if err != nil || done {
		t.Fatalf("before submission: done=%v err=%v", done, err)
	}
	if _, err := svc.Submit(context.Background(), 7, []models.Response{
		{QuestionID: "q1", Score: 3},
		{QuestionID: "q2", Score: 3},
	}); err != nil {
		t.Fatal(err)
	}
	done, err = svc.SubmittedToday(context.Background(), 7)
	if err != nil || !done {
		t.Fatalf("after submission: done=%v err=%v", done, err)
	}
}

func TestTrendReportAndSummary(t *testing.T) {
	records := []models.ScoreRecord{}
	dates := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	lowThenHigh := []float64{2, 2, 2, 2, 2, 2, 2, 4, 4, 4, 4, 4, 4, 4}
	for i, score := range lowThenHigh {
		records = append(records, models.ScoreRecord{
			UserID:     7,
			ScoreDate:  dates.AddDate(0, 0, i),
			TotalScore: score,
			RiskLevel:  wellbeing.ClassifyRisk(score),
		})
	}
	scoreStore := &stubScoreStore{records: records}
	svc, _, _ := fixtureService(scoreStore)

	trend, err := svc.TrendReport(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if trend.Trend != wellbeing.TrendUp {
		t.Fatalf("trend = %v, want up", trend.Trend)
	}
	if trend.ChangeFromPrevious != 2.0 {
		t.Fatalf("changeFromPrevious = %v, want 2.0", trend.ChangeFromPrevious)
	}

	summary, err := svc.Summary(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if summary.RiskLevel != models.RiskLow || summary.Score != 4 {
		t.Fatalf("summary = %+v", summary)
	}

	// No history falls back to the neutral default.
	blank, err := svc.Summary(context.Background(), 99)
	if err != nil {
		t.Fatal(err)
	}
	if blank.RiskLevel != models.RiskMedium || blank.Score != 0 {
		t.Fatalf("blank summary = %+v", blank)
	}
}
