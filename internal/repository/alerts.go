package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/models"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// Create inserts a new unread alert, minting its ID when the caller left
// it blank.
func (r *AlertRepository) Create(ctx context.Context, alert *models.Alert) error {
	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(alert).Error
}

// ListByUser returns the user's alerts in creation order (ascending Seq),
// which the lifecycle manager relies on for stable tie-breaking.
func (r *AlertRepository) ListByUser(ctx context.Context, userID uint) ([]models.Alert, error) {
	var alerts []models.Alert
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("seq ASC").
		Find(&alerts).Error
	return alerts, err
}

// MarkRead flips one alert to read. Already-read alerts match zero rows,
// keeping the transition one-way.
func (r *AlertRepository) MarkRead(ctx context.Context, alertID string) error {
	return r.db.WithContext(ctx).Model(&models.Alert{}).
		Where("id = ? AND is_read = ?", alertID, false).
		Update("is_read", true).Error
}

// MarkAllRead flips every unread alert of the user in one statement and
// reports how many rows changed.
func (r *AlertRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Alert{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
