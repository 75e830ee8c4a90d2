package services

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/errs"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/models"
)

type stubAlertSink struct {
	created []models.Alert
}

func (s *stubAlertSink) Create(_ context.Context, alert *models.Alert) error {
	s.created = append(s.created, *alert)
	return nil
}

type stubManagerSource struct {
	users map[uint]*models.User
}

func (s *stubManagerSource) GetByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, errs.NotFound("user not found")
}

func record(userID uint, score float64, level models.RiskLevel) models.ScoreRecord {
	return models.ScoreRecord{
		UserID:     userID,
		ScoreDate:  time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		TotalScore: score,
		RiskLevel:  level,
	}
}

func TestEscalationOnEnteringHighRisk(t *testing.T) {
	managerID := uint(10)
	sink := &stubAlertSink{}
	users := &stubManagerSource{users: map[uint]*models.User{
		1: {ID: 1, Name: "Aoki", ManagerID: &managerID},
	}}
	svc := NewEscalationService(zap.NewNop(), sink, users)

	previous := record(1, 3.0, models.RiskMedium)
	svc.ScoreRecorded(context.Background(), &previous, record(1, 2.0, models.RiskHigh))

	if len(sink.created) != 2 {
		t.Fatalf("created %d alerts, want 2 (employee and manager)", len(sink.created))
	}
	if sink.created[0].UserID != 1 || sink.created[0].Type != models.AlertRiskEscalation {
		t.Fatalf("employee alert = %+v", sink.created[0])
	}
	if sink.created[1].UserID != managerID {
		t.Fatalf("manager alert = %+v", sink.created[1])
	}
}

func TestEscalationSkipsWhenAlreadyHigh(t *testing.T) {
	sink := &stubAlertSink{}
	users := &stubManagerSource{users: map[uint]*models.User{1: {ID: 1}}}
	svc := NewEscalationService(zap.NewNop(), sink, users)

	previous := record(1, 2.2, models.RiskHigh)
	svc.ScoreRecorded(context.Background(), &previous, record(1, 2.0, models.RiskHigh))

	if len(sink.created) != 0 {
		t.Fatalf("created %d alerts for a score that stayed high", len(sink.created))
	}
}

func TestEscalationOnFirstSubmission(t *testing.T) {
	sink := &stubAlertSink{}
	users := &stubManagerSource{users: map[uint]*models.User{1: {ID: 1, Name: "Aoki"}}}
	svc := NewEscalationService(zap.NewNop(), sink, users)

	svc.ScoreRecorded(context.Background(), nil, record(1, 1.5, models.RiskHigh))

	// No manager on file: only the employee is alerted.
	if len(sink.created) != 1 || sink.created[0].UserID != 1 {
		t.Fatalf("alerts = %+v", sink.created)
	}
}

func TestNoEscalationBelowHighRisk(t *testing.T) {
	sink := &stubAlertSink{}
	users := &stubManagerSource{users: map[uint]*models.User{1: {ID: 1}}}
	svc := NewEscalationService(zap.NewNop(), sink, users)

	svc.ScoreRecorded(context.Background(), nil, record(1, 3.0, models.RiskMedium))
	svc.ScoreRecorded(context.Background(), nil, record(1, 4.5, models.RiskLow))

	if len(sink.created) != 0 {
		t.Fatalf("created %d alerts for non-high scores", len(sink.created))
	}
}
