package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryInsight is produced by a separate insight pipeline; the core only
// serves it read-only.
type CategoryInsight struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	CategoryID string    `gorm:"size:64;index;not null" json:"category_id"`
	Insight    string    `gorm:"type:text;not null" json:"insight"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (i *CategoryInsight) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID, err = uuid.NewV7()
	}
	return
}
