package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FactStatusActive     = "active"
	FactStatusSuperseded = "superseded"
)

// MemoryFact is a previously extracted, confidence-scored statement about the
// user. The fact extraction pipeline lives elsewhere; the core only reads
// active facts as LLM context.
type MemoryFact struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Category   string    `gorm:"size:64;not null" json:"category"`
	Confidence int       `gorm:"not null" json:"confidence"` // 0-100
	Status     string    `gorm:"size:16;default:active;index" json:"status"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (f *MemoryFact) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID, err = uuid.NewV7()
	}
	return
}
