package service

import (
	"sort"
	"time"

	"github.com/lumenhq/lumen-backend/internal/model"
)

// journalStreak counts consecutive days with at least one entry, walking
// back from the most recent entry. Multiple entries on the same calendar day
// neither extend nor break the streak; the first gap of more than one day
// ends it.
func journalStreak(dates []time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	days := make([]time.Time, len(dates))
	for i, d := range dates {
		d = d.UTC()
		days[i] = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	streak := 1
	for i := 1; i < len(days); i++ {
		gap := int(days[i-1].Sub(days[i]).Hours() / 24)
		switch {
		case gap == 0:
			continue
		case gap == 1:
			streak++
		default:
			return streak
		}
	}
	return streak
}

// topN returns the n most frequent keys, ties broken alphabetically so the
// result is deterministic.
func topN(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// engagementScore is a weighted linear combination of activity counts,
// capped at 100. Journal entries weigh most since they carry the most
// signal per item.
func engagementScore(messages, journals, moods, facts int) int {
	score := messages*1 + journals*3 + moods*2 + facts*2
	if score > 100 {
		return 100
	}
	return score
}

func averageMoodIntensity(moods []model.MoodEntry) float64 {
	if len(moods) == 0 {
		return 0
	}
	total := 0
	for _, m := range moods {
		total += m.Intensity
	}
	return float64(total) / float64(len(moods))
}
