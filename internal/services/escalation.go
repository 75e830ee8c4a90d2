package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/models"
)

// ManagerSource resolves the owner of a score record so their manager can
// be notified too.
type ManagerSource interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// EscalationService turns risk transitions into alerts. It implements the
// survey service's escalation hook: the rule here is that a score entering
// the high tier raises a risk-escalation alert for the employee and, when
// one exists, their manager. A score that merely stays high raises nothing,
// so a struggling user is not re-alerted every day.
type EscalationService struct {
	log    *zap.Logger
	alerts AlertSink
	users  ManagerSource
}

func NewEscalationService(log *zap.Logger, alerts AlertSink, users ManagerSource) *EscalationService {
	return &EscalationService{log: log, alerts: alerts, users: users}
}

// ScoreRecorded is called by the survey service after each persisted
// submission. Failures are logged, never propagated; alerting must not
// fail a submission.
func (s *EscalationService) ScoreRecorded(ctx context.Context, previous *models.ScoreRecord, current models.ScoreRecord) {
	if current.RiskLevel != models.RiskHigh {
		return
	}
	if previous != nil && previous.RiskLevel == models.RiskHigh {
		return
	}

	s.log.Warn("Wellbeing score escalated to high risk",
		zap.Uint("userID", current.UserID),
		zap.Float64("totalScore", current.TotalScore),
	)

	message := fmt.Sprintf("Wellbeing score dropped to %.1f (high risk).", current.TotalScore)
	s.create(ctx, current.UserID, message)

	user, err := s.users.GetByID(ctx, current.UserID)
	if err != nil {
		s.log.Error("Failed to resolve user for escalation", zap.Uint("userID", current.UserID), zap.Error(err))
		return
	}
	if user.ManagerID != nil {
		s.create(ctx, *user.ManagerID, fmt.Sprintf("%s's wellbeing score dropped to %.1f (high risk).", user.Name, current.TotalScore))
	}
}

func (s *EscalationService) create(ctx context.Context, userID uint, message string) {
	alert := &models.Alert{
		UserID:  userID,
		Type:    models.AlertRiskEscalation,
		Message: message,
	}
	if err := s.alerts.Create(ctx, alert); err != nil {
		s.log.Error("Failed to create escalation alert", zap.Uint("userID", userID), zap.Error(err))
	}
}
