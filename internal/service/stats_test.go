package service

import (
	"testing"
	"time"

	"github.com/lumenhq/lumen-backend/internal/model"
	"github.com/stretchr/testify/assert"
)

func day(daysAgo int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -daysAgo)
}

func TestJournalStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{"no entries", nil, 0},
		{"single entry", []time.Time{day(0)}, 1},
		{"three consecutive days", []time.Time{day(0), day(1), day(2)}, 3},
		{"gap breaks the streak", []time.Time{day(0), day(1), day(3), day(4)}, 2},
		{"same-day duplicates neither extend nor break", []time.Time{day(0), day(0), day(1)}, 2},
		{"duplicates inside a run", []time.Time{day(0), day(1), day(1), day(2)}, 3},
		{"only old entries", []time.Time{day(10), day(11)}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, journalStreak(tt.dates))
		})
	}
}

func TestTopN(t *testing.T) {
	counts := map[string]int{"calm": 3, "anxious": 5, "tired": 3, "happy": 1}

	top := topN(counts, 2)
	assert.Equal(t, []string{"anxious", "calm"}, top)

	// Ties break alphabetically so results are deterministic.
	top = topN(counts, 3)
	assert.Equal(t, []string{"anxious", "calm", "tired"}, top)
}

func TestEngagementScoreCap(t *testing.T) {
	assert.Equal(t, 100, engagementScore(200, 50, 50, 50))
	assert.Equal(t, 0, engagementScore(0, 0, 0, 0))
	assert.Equal(t, 10, engagementScore(2, 2, 1, 0))
}

func TestAverageMoodIntensity(t *testing.T) {
	moods := []model.MoodEntry{
		{Mood: "calm", Intensity: 4},
		{Mood: "anxious", Intensity: 8},
	}
	assert.InDelta(t, 6.0, averageMoodIntensity(moods), 0.001)
	assert.Equal(t, float64(0), averageMoodIntensity(nil))
}
