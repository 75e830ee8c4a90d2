package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/models"
)

// UserSource finds users whose reminder preferences match a wall-clock time.
type UserSource interface {
	UsersForReminder(ctx context.Context, reminderTime string) ([]models.User, error)
}

// SubmissionSource reports whether a user already submitted on a date.
type SubmissionSource interface {
	HasSubmission(ctx context.Context, userID uint, date time.Time) (bool, error)
}

// AlertSink creates new alerts. The scheduler only ever produces reminder
// alerts; it never reads or mutates existing ones.
type AlertSink interface {
	Create(ctx context.Context, alert *models.Alert) error
}

// Scheduler nudges users who have not submitted their daily survey: one
// reminder alert plus a reminder email at their configured time.
type Scheduler struct {
	log          *zap.Logger
	emailService *EmailService
	users        UserSource
	surveys      SubmissionSource
	alerts       AlertSink
}

func NewScheduler(log *zap.Logger, emailService *EmailService, users UserSource, surveys SubmissionSource, alerts AlertSink) *Scheduler {
	return &Scheduler{
		log:          log,
		emailService: emailService,
		users:        users,
		surveys:      surveys,
		alerts:       alerts,
	}
}

// Start runs the scheduler in a goroutine.
func (s *Scheduler) Start() {
	s.log.Info("Starting reminder scheduler...")
	go func() {
		// Ticker will fire on every minute.
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			<-ticker.C
			s.runReminderCheck()
		}
	}()
}

func (s *Scheduler) runReminderCheck() {
	ctx := context.Background()

	// Reminder times are stored as UTC HH:MM.
	now := time.Now().UTC()
	currentTime := now.Format("15:04")
	today := now.Truncate(24 * time.Hour)
	s.log.Debug("Running reminder check", zap.String("utc_time", currentTime))

	users, err := s.users.UsersForReminder(ctx, currentTime)
	if err != nil {
		s.log.Error("Failed to get users for reminder", zap.Error(err))
		return
	}

	for _, user := range users {
		submitted, err := s.surveys.HasSubmission(ctx, user.ID, today)
		if err != nil {
			s.log.Error("Failed to check survey completion status", zap.Uint("userID", user.ID), zap.Error(err))
			continue
		}
		if submitted {
			continue
		}

		alert := &models.Alert{
			UserID:  user.ID,
			Type:    models.AlertReminder,
			Message: "Don't forget today's wellbeing check-in.",
		}
		if err := s.alerts.Create(ctx, alert); err != nil {
			s.log.Error("Failed to create reminder alert", zap.Uint("userID", user.ID), zap.Error(err))
		}

		go s.sendReminder(user)
	}
}

func (s *Scheduler) sendReminder(user models.User) {
	s.emailService.SendReminderEmail(user)
}
