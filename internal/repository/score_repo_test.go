package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lumenhq/lumen-backend/internal/model"
	"github.com/lumenhq/lumen-backend/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.CategoryScore{}))
	return db
}

func sampleScore(userID uuid.UUID, periodStart time.Time) *model.CategoryScore {
	return &model.CategoryScore{
		UserID:      userID,
		CategoryID:  "1",
		PeriodType:  model.PeriodDaily,
		PeriodStart: periodStart,
		PeriodEnd:   periodStart.AddDate(0, 0, 1),
		Score:       60,
		Reasoning:   "steady",
		Confidence:  model.ConfidenceMedium,
	}
}

func TestScoreCreateDuplicatePeriodIsConflict(t *testing.T) {
	db := newTestDB(t)
	repo := NewScoreRepository(db)
	userID := uuid.New()
	start := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(context.Background(), sampleScore(userID, start)))

	err := repo.Create(context.Background(), sampleScore(userID, start))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	// Same period for a different user is fine.
	require.NoError(t, repo.Create(context.Background(), sampleScore(uuid.New(), start)))

	// And a different period for the same user is fine.
	require.NoError(t, repo.Create(context.Background(), sampleScore(userID, start.AddDate(0, 0, 1))))
}

func TestScoreFindByCategoryNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewScoreRepository(db)
	userID := uuid.New()
	start := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(context.Background(), sampleScore(userID, start.AddDate(0, 0, i))))
	}

	scores, err := repo.FindByCategory(context.Background(), userID, "1", model.PeriodDaily, 2)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.True(t, scores[0].PeriodStart.After(scores[1].PeriodStart))
}

func TestScoreFindByPeriodMissingReturnsNil(t *testing.T) {
	db := newTestDB(t)
	repo := NewScoreRepository(db)

	score, err := repo.FindByPeriod(context.Background(), uuid.New(), "1", model.PeriodDaily, time.Now())
	require.NoError(t, err)
	assert.Nil(t, score)
}
