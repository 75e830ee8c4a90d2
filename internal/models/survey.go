package models

import "time"

// RiskLevel is the ordinal wellbeing classification derived from a score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Response is one employee's answer to one question within a submission.
// Never mutated after creation.
type Response struct {
	ID             uint    `gorm:"primaryKey" json:"-"`
	SurveyRecordID uint    `gorm:"index;not null" json:"-"`
	QuestionID     string  `gorm:"not null" json:"questionId"`
	Score          float64 `gorm:"not null" json:"score"`
}

// SurveyRecord is one employee's daily submission. The composite unique
// index enforces at most one record per (user, survey date).
type SurveyRecord struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;uniqueIndex:idx_surveys_user_date" json:"userId"`
	SurveyDate  time.Time  `gorm:"type:date;not null;uniqueIndex:idx_surveys_user_date" json:"surveyDate"`
	TotalScore  float64    `gorm:"not null" json:"totalScore"`
	SubmittedAt time.Time  `gorm:"not null" json:"submittedAt"`
	Responses   []Response `gorm:"constraint:OnDelete:CASCADE" json:"responses"`
}

// ScoreRecord is the derived daily scoring snapshot. RiskLevel is written
// by the classifier at submission time; read paths recompute it from
// TotalScore so a threshold change cannot leave stale tiers behind.
type ScoreRecord struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	UserID     uint      `gorm:"not null;index:idx_scores_user_date" json:"userId"`
	ScoreDate  time.Time `gorm:"type:date;not null;index:idx_scores_user_date" json:"scoreDate"`
	TotalScore float64   `gorm:"not null" json:"totalScore"`
	RiskLevel  RiskLevel `gorm:"type:varchar(8);not null" json:"riskLevel"`
	CreatedAt  time.Time `json:"-"`
}
