package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lumenhq/lumen-backend/internal/jobs"
	"github.com/lumenhq/lumen-backend/internal/model"
	"github.com/lumenhq/lumen-backend/internal/repository"
	"github.com/lumenhq/lumen-backend/pkg/apperror"
	"github.com/lumenhq/lumen-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const reflectionJSON = `{
	"summary": "A thoughtful, boundary-testing writer.",
	"openness": 80, "conscientiousness": 65, "extraversion": 40,
	"agreeableness": 70, "neuroticism": 55,
	"archetype": "The Quiet Cartographer",
	"dominant_traits": ["introspective", "deliberate"],
	"behavioral_patterns": ["journals at night"],
	"emotional_patterns": ["names feelings precisely"],
	"relationship_dynamics": ["slow to open up"],
	"coping_mechanisms": ["long walks"],
	"growth_areas": ["asking for help"],
	"strengths": ["self-honesty"],
	"blind_spots": ["discounts praise"],
	"values_beliefs": ["autonomy"],
	"therapeutic_insights": ["avoidance spikes under deadlines"],
	"core_insight": "You mistake self-reliance for safety.",
	"growth_leverage_point": "Ask one person for help each week."
}`

func newReflectionService(t *testing.T, db *gorm.DB, fake *fakeLLM) (*ReflectionService, repository.ReflectionRepository) {
	t.Helper()
	reflections := repository.NewReflectionRepository(db)
	svc := NewReflectionService(
		reflections,
		repository.NewJournalRepository(db),
		repository.NewChatRepository(db),
		repository.NewMoodRepository(db),
		repository.NewMemoryRepository(db),
		fake,
		jobs.NewCoordinator(logger.NewNop()),
		logger.NewNop(),
	)
	return svc, reflections
}

func seedChatHistory(t *testing.T, db *gorm.DB, userID uuid.UUID, n int) {
	t.Helper()
	chats := repository.NewChatRepository(db)
	conv := &model.Conversation{UserID: userID, Title: "daily check-in"}
	require.NoError(t, chats.CreateConversation(context.Background(), conv))
	for i := 0; i < n; i++ {
		require.NoError(t, chats.CreateMessage(context.Background(), &model.ChatMessage{
			ConversationID: conv.ID,
			UserID:         userID,
			Role:           "user",
			Content:        fmt.Sprintf("message %d", i),
		}))
	}
}

func waitForStatus(t *testing.T, reflections repository.ReflectionRepository, id uuid.UUID, status string) *model.PersonalityReflection {
	t.Helper()
	var rec *model.PersonalityReflection
	require.Eventually(t, func() bool {
		var err error
		rec, err = reflections.FindByID(context.Background(), id)
		require.NoError(t, err)
		return rec != nil && rec.Status == status
	}, 3*time.Second, 10*time.Millisecond)
	return rec
}

func TestRequestInvalidTier(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newReflectionService(t, db, &fakeLLM{})

	_, err := svc.Request(context.Background(), uuid.New(), "platinum")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
}

func TestRequestCompletesReflection(t *testing.T) {
	db := newTestDB(t)
	fake := &fakeLLM{fn: func(prompt string, out any) error {
		return json.Unmarshal([]byte(reflectionJSON), out)
	}}
	svc, reflections := newReflectionService(t, db, fake)
	userID := uuid.New()
	seedChatHistory(t, db, userID, 12)

	rec, err := svc.Request(context.Background(), userID, model.TierPremium)
	require.NoError(t, err)
	assert.Equal(t, model.ReflectionPending, rec.Status)

	done := waitForStatus(t, reflections, rec.ID, model.ReflectionCompleted)
	assert.Equal(t, 100, done.Progress)
	assert.Equal(t, "The Quiet Cartographer", done.CoreTraits.Archetype)
	assert.Equal(t, 80, done.CoreTraits.Openness)
	assert.NotEmpty(t, done.Strengths)
	require.NotNil(t, done.CoreInsight)
	assert.Equal(t, 12, done.Stats.MessageCount)
	assert.Equal(t, 1, fake.calls)
}

func TestRequestReturnsActiveRecord(t *testing.T) {
	db := newTestDB(t)
	release := make(chan struct{})
	fake := &fakeLLM{fn: func(prompt string, out any) error {
		<-release
		return json.Unmarshal([]byte(reflectionJSON), out)
	}}
	svc, _ := newReflectionService(t, db, fake)
	userID := uuid.New()
	seedChatHistory(t, db, userID, 12)

	first, err := svc.Request(context.Background(), userID, model.TierFree)
	require.NoError(t, err)

	// While the first job is in flight, a second request returns the same
	// record instead of creating a new one.
	second, err := svc.Request(context.Background(), userID, model.TierFree)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Active())

	close(release)
}

func TestRequestInsufficientDataFails(t *testing.T) {
	db := newTestDB(t)
	fake := &fakeLLM{}
	svc, reflections := newReflectionService(t, db, fake)
	userID := uuid.New()

	rec, err := svc.Request(context.Background(), userID, model.TierStandard)
	require.NoError(t, err)

	failed := waitForStatus(t, reflections, rec.ID, model.ReflectionFailed)
	require.NotNil(t, failed.ErrorMessage)
	assert.Contains(t, *failed.ErrorMessage, "enough of your writing")
	assert.Equal(t, 0, fake.calls, "LLM must not be called on insufficient data")
}

func TestRequestQuotaErrorGetsSpecificMessage(t *testing.T) {
	db := newTestDB(t)
	fake := &fakeLLM{fn: func(prompt string, out any) error {
		return errors.New("generate content: 429 quota exceeded for model")
	}}
	svc, reflections := newReflectionService(t, db, fake)
	userID := uuid.New()
	seedChatHistory(t, db, userID, 12)

	rec, err := svc.Request(context.Background(), userID, model.TierFree)
	require.NoError(t, err)

	failed := waitForStatus(t, reflections, rec.ID, model.ReflectionFailed)
	require.NotNil(t, failed.ErrorMessage)
	assert.Equal(t, quotaMessage, *failed.ErrorMessage)
	assert.Equal(t, 0, failed.Progress)
}

func TestRequestClampsTraitValues(t *testing.T) {
	db := newTestDB(t)
	fake := &fakeLLM{fn: func(prompt string, out any) error {
		return json.Unmarshal([]byte(`{"summary": "s", "openness": 150, "neuroticism": -20, "archetype": "a"}`), out)
	}}
	svc, reflections := newReflectionService(t, db, fake)
	userID := uuid.New()
	seedChatHistory(t, db, userID, 12)

	rec, err := svc.Request(context.Background(), userID, model.TierFree)
	require.NoError(t, err)

	done := waitForStatus(t, reflections, rec.ID, model.ReflectionCompleted)
	assert.Equal(t, 100, done.CoreTraits.Openness)
	assert.Equal(t, 0, done.CoreTraits.Neuroticism)
}

func TestGetByIDOwnership(t *testing.T) {
	db := newTestDB(t)
	svc, reflections := newReflectionService(t, db, &fakeLLM{})
	owner := uuid.New()

	rec := &model.PersonalityReflection{UserID: owner, Tier: model.TierFree, Status: model.ReflectionCompleted}
	require.NoError(t, reflections.Create(context.Background(), rec))

	_, err := svc.GetByID(context.Background(), owner, rec.ID)
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), uuid.New(), rec.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperror.MapErrorToStatus(err))

	_, err = svc.GetByID(context.Background(), owner, uuid.New())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
}

func TestLatestNotFound(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newReflectionService(t, db, &fakeLLM{})

	_, err := svc.Latest(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
}
