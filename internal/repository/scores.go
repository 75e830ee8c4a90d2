package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/models"
)

type ScoreRepository struct {
	db *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// ListByUser returns the user's score history ascending by date, the order
// the trend analyzer expects.
func (r *ScoreRepository) ListByUser(ctx context.Context, userID uint) ([]models.ScoreRecord, error) {
	var records []models.ScoreRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("score_date ASC").
		Find(&records).Error
	return records, err
}

// LatestScore returns the user's most recent score record, or nil when the
// user has never submitted.
func (r *ScoreRepository) LatestScore(ctx context.Context, userID uint) (*models.ScoreRecord, error) {
	var record models.ScoreRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("score_date DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
