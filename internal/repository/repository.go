// Package repository implements the store interfaces the core packages
// consume, backed by GORM over Postgres.
package repository

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Stores bundles the per-entity repositories so the router and the
// background services share one wiring point.
type Stores struct {
	Users   *UserRepository
	Surveys *SurveyRepository
	Scores  *ScoreRepository
	Alerts  *AlertRepository
}

func NewStores(db *gorm.DB) *Stores {
	return &Stores{
		Users:   NewUserRepository(db),
		Surveys: NewSurveyRepository(db),
		Scores:  NewScoreRepository(db),
		Alerts:  NewAlertRepository(db),
	}
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
