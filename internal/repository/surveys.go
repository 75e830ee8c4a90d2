package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/errs"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/models"
)

type SurveyRepository struct {
	db *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) *SurveyRepository {
	return &SurveyRepository{db: db}
}

// CreateWithScore writes the submission and its derived score record in a
// single transaction. A duplicate (user, survey date) pair surfaces as a
// conflict so callers never silently overwrite a day.
func (r *SurveyRepository) CreateWithScore(ctx context.Context, survey *models.SurveyRecord, score *models.ScoreRecord) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(survey).Error; err != nil {
			return err
		}
		return tx.Create(score).Error
	})
	if isUniqueViolation(err) {
		return errs.Conflict("survey already submitted for this date")
	}
	return err
}

// HasSubmission checks for an existing submission on the given calendar day.
func (r *SurveyRepository) HasSubmission(ctx context.Context, userID uint, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SurveyRecord{}).
		Where("user_id = ? AND survey_date = ?", userID, date).
		Count(&count).Error
	return count > 0, err
}
