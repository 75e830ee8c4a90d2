package models

import "time"

// AlertType categorizes who produced an alert and why.
type AlertType string

const (
	AlertRiskEscalation AlertType = "risk-escalation"
	AlertReminder       AlertType = "reminder"
)

// Alert is a notification owned by one user. IsRead only ever transitions
// false to true; ownership never changes after creation. Seq is a
// monotonically increasing creation sequence used to break ties between
// alerts created at the identical timestamp.
type Alert struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Seq       uint      `gorm:"autoIncrement;uniqueIndex" json:"-"`
	UserID    uint      `gorm:"not null;index:idx_alerts_user_created" json:"userId"`
	Type      AlertType `gorm:"type:varchar(32);not null" json:"type"`
	Message   string    `json:"message"`
	IsRead    bool      `gorm:"not null;default:false" json:"isRead"`
	CreatedAt time.Time `gorm:"index:idx_alerts_user_created" json:"createdAt"`
}
