package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a []string stored as a JSON text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
}

// CoreTraits holds the Big-Five scores plus archetype labels for a reflection.
type CoreTraits struct {
	Openness          int        `json:"openness"`
	Conscientiousness int        `json:"conscientiousness"`
	Extraversion      int        `json:"extraversion"`
	Agreeableness     int        `json:"agreeableness"`
	Neuroticism       int        `json:"neuroticism"`
	Archetype         string     `json:"archetype"`
	DominantTraits    StringList `json:"dominant_traits"`
}

func (t CoreTraits) Value() (driver.Value, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *CoreTraits) Scan(value interface{}) error {
	if value == nil {
		*t = CoreTraits{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported type for CoreTraits: %T", value)
	}
}

// ReflectionStats is the statistics snapshot computed alongside a reflection.
type ReflectionStats struct {
	MessageCount      int        `json:"message_count"`
	JournalCount      int        `json:"journal_count"`
	MoodCount         int        `json:"mood_count"`
	FactCount         int        `json:"fact_count"`
	AvgMoodIntensity  float64    `json:"avg_mood_intensity"`
	JournalStreakDays int        `json:"journal_streak_days"`
	TopMoods          StringList `json:"top_moods"`
	TopFactCategories StringList `json:"top_fact_categories"`
	EngagementScore   int        `json:"engagement_score"`
}

func (s ReflectionStats) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *ReflectionStats) Scan(value interface{}) error {
	if value == nil {
		*s = ReflectionStats{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported type for ReflectionStats: %T", value)
	}
}
