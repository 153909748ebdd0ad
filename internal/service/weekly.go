package service

import "math"

const trendThreshold = 3.0

// WeeklySummary condenses a chronological run of scores into an average and
// a coarse trend.
type WeeklySummary struct {
	WeeklyScore int     `json:"weekly_score"`
	Trend       string  `json:"trend"` // 'improving', 'declining', 'stable'
	Delta       float64 `json:"delta"`
}

// calculateWeeklySummary averages the scores and compares the second half of
// the window against the first. A half-over-half movement of more than 3
// points either way counts as a trend; anything smaller is noise.
func calculateWeeklySummary(scores []int) WeeklySummary {
	if len(scores) == 0 {
		return WeeklySummary{WeeklyScore: 0, Trend: "stable", Delta: 0}
	}

	total := 0
	for _, s := range scores {
		total += s
	}
	weeklyScore := int(math.Round(float64(total) / float64(len(scores))))

	if len(scores) < 2 {
		return WeeklySummary{WeeklyScore: weeklyScore, Trend: "stable", Delta: 0}
	}

	mid := len(scores) / 2
	firstAvg := mean(scores[:mid])
	secondAvg := mean(scores[mid:])
	delta := secondAvg - firstAvg

	trend := "stable"
	if delta > trendThreshold {
		trend = "improving"
	} else if delta < -trendThreshold {
		trend = "declining"
	}

	return WeeklySummary{WeeklyScore: weeklyScore, Trend: trend, Delta: delta}
}

func mean(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	total := 0
	for _, s := range scores {
		total += s
	}
	return float64(total) / float64(len(scores))
}
