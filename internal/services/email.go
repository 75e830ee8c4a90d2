package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/models"
)

// EmailService is a placeholder for a real email sending service.
type EmailService struct {
	log *zap.Logger
}

func NewEmailService(log *zap.Logger) *EmailService {
	return &EmailService{log: log}
}

// SendReminderEmail simulates sending a daily pulse reminder email.
func (s *EmailService) SendReminderEmail(user models.User) {
	s.log.Info("Sending reminder email",
		zap.String("to", user.Email),
		zap.String("name", user.Name),
	)
	// In a real application, you would use an SMTP client like go-mail
	// to send a templated HTML email here.
	fmt.Printf("--- SIMULATING EMAIL ---\nTo: %s\nSubject: Reminder to complete your daily pulse survey\nHi %s,\nThis is a friendly reminder to complete today's wellbeing check-in.\n\n", user.Email, user.Name)
}
