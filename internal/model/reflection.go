package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TierFree     = "free"
	TierStandard = "standard"
	TierPremium  = "premium"

	ReflectionPending    = "pending"
	ReflectionProcessing = "processing"
	ReflectionCompleted  = "completed"
	ReflectionFailed     = "failed"
)

// PersonalityReflection is a long-lived analysis artifact with explicit
// state. Status transitions pending -> processing -> completed|failed and is
// driven exclusively by the background job once created. Regeneration always
// creates a new record; old ones remain as history.
type PersonalityReflection struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Tier           string    `gorm:"size:16;not null" json:"tier"`
	Status         string    `gorm:"size:16;not null;index" json:"status"`
	Progress       int       `gorm:"default:0" json:"progress"` // 0-100
	CurrentSection *string   `gorm:"size:255" json:"current_section"`
	ErrorMessage   *string   `gorm:"type:text" json:"error_message"`

	Summary    string     `gorm:"type:text" json:"summary"`
	CoreTraits CoreTraits `gorm:"type:text" json:"core_traits"`

	BehavioralPatterns   StringList `gorm:"type:text" json:"behavioral_patterns"`
	EmotionalPatterns    StringList `gorm:"type:text" json:"emotional_patterns"`
	RelationshipDynamics StringList `gorm:"type:text" json:"relationship_dynamics"`
	CopingMechanisms     StringList `gorm:"type:text" json:"coping_mechanisms"`
	GrowthAreas          StringList `gorm:"type:text" json:"growth_areas"`
	Strengths            StringList `gorm:"type:text" json:"strengths"`
	BlindSpots           StringList `gorm:"type:text" json:"blind_spots"`
	ValuesBeliefs        StringList `gorm:"type:text" json:"values_beliefs"`
	TherapeuticInsights  StringList `gorm:"type:text" json:"therapeutic_insights"`

	CoreInsight         *string `gorm:"type:text" json:"core_insight"`
	GrowthLeveragePoint *string `gorm:"type:text" json:"growth_leverage_point"`

	Stats ReflectionStats `gorm:"type:text" json:"stats"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *PersonalityReflection) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}

// Active reports whether the reflection still has a job attached to it.
func (r *PersonalityReflection) Active() bool {
	return r.Status == ReflectionPending || r.Status == ReflectionProcessing
}
