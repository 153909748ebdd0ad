package service

import (
	"context"
	"testing"

	"github.com/lumenhq/lumen-backend/internal/model"
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

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.UserCategory{},
		&model.JournalEntry{},
		&model.MoodEntry{},
		&model.Conversation{},
		&model.ChatMessage{},
		&model.MemoryFact{},
		&model.CategoryScore{},
		&model.PersonalityReflection{},
		&model.CategoryInsight{},
	))

	return db
}

// fakeLLM satisfies llm.Completer. fn may mutate out to simulate a model
// response; calls counts invocations.
type fakeLLM struct {
	calls int
	fn    func(prompt string, out any) error
}

func (f *fakeLLM) CompleteJSON(_ context.Context, prompt string, out any) error {
	f.calls++
	if f.fn != nil {
		return f.fn(prompt, out)
	}
	return nil
}
