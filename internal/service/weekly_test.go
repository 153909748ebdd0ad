package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateWeeklySummaryEmpty(t *testing.T) {
	summary := calculateWeeklySummary(nil)

	assert.Equal(t, 0, summary.WeeklyScore)
	assert.Equal(t, "stable", summary.Trend)
	assert.Equal(t, float64(0), summary.Delta)
}

func TestCalculateWeeklySummaryAverage(t *testing.T) {
	summary := calculateWeeklySummary([]int{10, 20, 30})

	assert.Equal(t, 20, summary.WeeklyScore)
}

func TestCalculateWeeklySummaryImproving(t *testing.T) {
	summary := calculateWeeklySummary([]int{10, 10, 20, 20})

	assert.Equal(t, "improving", summary.Trend)
	assert.Greater(t, summary.Delta, float64(3))
}

func TestCalculateWeeklySummaryDeclining(t *testing.T) {
	summary := calculateWeeklySummary([]int{20, 20, 10, 10})

	assert.Equal(t, "declining", summary.Trend)
	assert.Less(t, summary.Delta, float64(0))
}

func TestCalculateWeeklySummaryStableWithinThreshold(t *testing.T) {
	summary := calculateWeeklySummary([]int{50, 51, 52, 50})

	assert.Equal(t, "stable", summary.Trend)
}
