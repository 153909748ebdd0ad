package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lumenhq/lumen-backend/internal/model"
	"github.com/lumenhq/lumen-backend/internal/repository"
	"github.com/lumenhq/lumen-backend/pkg/apperror"
	"github.com/lumenhq/lumen-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newScoringService(t *testing.T, db *gorm.DB, fake *fakeLLM) *ScoringService {
	t.Helper()
	journals := repository.NewJournalRepository(db)
	chats := repository.NewChatRepository(db)
	return NewScoringService(
		NewAggregator(journals, chats),
		fake,
		repository.NewScoreRepository(db),
		repository.NewUserRepository(db),
		logger.NewNop(),
	)
}

func seedJournalEntries(t *testing.T, db *gorm.DB, userID uuid.UUID, contents []string) {
	t.Helper()
	journals := repository.NewJournalRepository(db)
	for i, content := range contents {
		entry := &model.JournalEntry{
			UserID:    userID,
			Title:     "entry",
			Content:   content,
			CreatedAt: time.Now().Add(-time.Duration(i) * time.Hour),
		}
		require.NoError(t, journals.Create(context.Background(), entry))
	}
}

func selectCategory(t *testing.T, db *gorm.DB, userID uuid.UUID, categoryID string) {
	t.Helper()
	users := repository.NewUserRepository(db)
	require.NoError(t, db.Create(&model.User{ID: userID}).Error)
	require.NoError(t, users.SelectCategories(context.Background(), userID, []string{categoryID}))
}

func TestScoreInsufficientDataSkipsLLM(t *testing.T) {
	db := newTestDB(t)
	fake := &fakeLLM{}
	svc := newScoringService(t, db, fake)
	userID := uuid.New()

	// One journal entry and zero messages is below both thresholds.
	seedJournalEntries(t, db, userID, []string{"a short note"})

	result, err := svc.Score(context.Background(), userID, "1", 7)
	require.NoError(t, err)

	assert.True(t, result.InsufficientData)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, model.ConfidenceLow, result.Confidence)
	assert.Empty(t, result.KeyPatterns)
	assert.NotEmpty(t, result.Reasoning)
	assert.Equal(t, 0, fake.calls, "LLM must not be called on insufficient data")
}

func TestScoreUnknownCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newScoringService(t, db, &fakeLLM{})

	_, err := svc.Score(context.Background(), uuid.New(), "no-such-category", 7)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
}

func TestGenerateRequiresSelectedCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newScoringService(t, db, &fakeLLM{})

	_, err := svc.Generate(context.Background(), uuid.New(), "1", model.PeriodDaily, 7)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperror.MapErrorToStatus(err))
}

func TestGenerateInsufficientDataIsBadRequest(t *testing.T) {
	db := newTestDB(t)
	fake := &fakeLLM{}
	svc := newScoringService(t, db, fake)
	userID := uuid.New()
	selectCategory(t, db, userID, "1")

	_, err := svc.Generate(context.Background(), userID, "1", model.PeriodDaily, 7)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
	assert.Equal(t, 0, fake.calls)
}

func TestGeneratePersistsExactlyOneRow(t *testing.T) {
	db := newTestDB(t)
	fake := &fakeLLM{fn: func(prompt string, out any) error {
		return json.Unmarshal([]byte(`{
			"score": 72,
			"reasoning": "clear boundary language in both entries",
			"key_patterns": ["said no to overtime"],
			"progress_indicators": ["negotiated a deadline"],
			"areas_for_growth": ["guilt after declining"],
			"confidence": "medium"
		}`), out)
	}}
	svc := newScoringService(t, db, fake)
	userID := uuid.New()
	selectCategory(t, db, userID, "1")
	seedJournalEntries(t, db, userID, []string{
		"I told my manager I can't take the weekend shift and it felt right.",
		"Said no to a family request without over-explaining.",
	})

	row, err := svc.Generate(context.Background(), userID, "1", model.PeriodDaily, 7)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, row.Score, 0)
	assert.LessOrEqual(t, row.Score, 100)
	assert.NotEmpty(t, row.Reasoning)
	assert.Equal(t, "medium", row.Confidence)

	history, err := svc.History(context.Background(), userID, "1", model.PeriodDaily, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, row.ID, history[0].ID)
}

func TestGenerateClampsOutOfRangeScore(t *testing.T) {
	db := newTestDB(t)
	fake := &fakeLLM{fn: func(prompt string, out any) error {
		return json.Unmarshal([]byte(`{"score": 150, "reasoning": "r", "confidence": "high"}`), out)
	}}
	svc := newScoringService(t, db, fake)
	userID := uuid.New()
	selectCategory(t, db, userID, "2")
	seedJournalEntries(t, db, userID, []string{"one", "two"})

	row, err := svc.Generate(context.Background(), userID, "2", model.PeriodDaily, 7)
	require.NoError(t, err)
	assert.Equal(t, 100, row.Score)
}

func TestGenerateDuplicatePeriodConflicts(t *testing.T) {
	db := newTestDB(t)
	fake := &fakeLLM{fn: func(prompt string, out any) error {
		return json.Unmarshal([]byte(`{"score": 50, "reasoning": "r", "confidence": "low"}`), out)
	}}
	svc := newScoringService(t, db, fake)
	userID := uuid.New()
	selectCategory(t, db, userID, "1")
	seedJournalEntries(t, db, userID, []string{"one", "two"})

	_, err := svc.Generate(context.Background(), userID, "1", model.PeriodDaily, 7)
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), userID, "1", model.PeriodDaily, 7)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.MapErrorToStatus(err))
}

func TestGenerateComputesDeltaFromPreviousPeriod(t *testing.T) {
	db := newTestDB(t)
	fake := &fakeLLM{fn: func(prompt string, out any) error {
		return json.Unmarshal([]byte(`{"score": 60, "reasoning": "r", "confidence": "medium"}`), out)
	}}
	svc := newScoringService(t, db, fake)
	userID := uuid.New()
	selectCategory(t, db, userID, "1")
	seedJournalEntries(t, db, userID, []string{"one", "two"})

	// Seed yesterday's score directly.
	today, _ := periodBounds(model.PeriodDaily, time.Now().UTC())
	scores := repository.NewScoreRepository(db)
	require.NoError(t, scores.Create(context.Background(), &model.CategoryScore{
		UserID:      userID,
		CategoryID:  "1",
		PeriodType:  model.PeriodDaily,
		PeriodStart: today.AddDate(0, 0, -1),
		PeriodEnd:   today,
		Score:       45,
		Confidence:  model.ConfidenceMedium,
	}))

	row, err := svc.Generate(context.Background(), userID, "1", model.PeriodDaily, 7)
	require.NoError(t, err)
	require.NotNil(t, row.Delta)
	assert.Equal(t, 15, *row.Delta)
}
