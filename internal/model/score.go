package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PeriodDaily  = "daily"
	PeriodWeekly = "weekly"

	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// CategoryScore is a point-in-time assessment of a user along one category
// for one period. Rows are never mutated; later periods supersede them.
// The composite unique index is what prevents duplicate-period writes.
type CategoryScore struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_score_period,priority:1" json:"user_id"`
	CategoryID         string     `gorm:"size:64;not null;uniqueIndex:idx_score_period,priority:2" json:"category_id"`
	PeriodType         string     `gorm:"size:16;not null;uniqueIndex:idx_score_period,priority:3" json:"period_type"`
	PeriodStart        time.Time  `gorm:"not null;uniqueIndex:idx_score_period,priority:4" json:"period_start"`
	PeriodEnd          time.Time  `gorm:"not null" json:"period_end"`
	Score              int        `gorm:"not null" json:"score"` // 0-100
	Delta              *int       `json:"delta"`
	Reasoning          string     `gorm:"type:text" json:"reasoning"`
	KeyPatterns        StringList `gorm:"type:text" json:"key_patterns"`
	ProgressIndicators StringList `gorm:"type:text" json:"progress_indicators"`
	AreasForGrowth     StringList `gorm:"type:text" json:"areas_for_growth"`
	Confidence         string     `gorm:"size:16;not null" json:"confidence"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (s *CategoryScore) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID, err = uuid.NewV7()
	}
	return
}
