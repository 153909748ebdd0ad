package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lumenhq/lumen-backend/internal/model"
	"github.com/lumenhq/lumen-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAggregator(db *gorm.DB) *Aggregator {
	return NewAggregator(repository.NewJournalRepository(db), repository.NewChatRepository(db))
}

func seedConversation(t *testing.T, db *gorm.DB, userID uuid.UUID, msgTimes []time.Time) uuid.UUID {
	t.Helper()
	chats := repository.NewChatRepository(db)
	conv := &model.Conversation{UserID: userID, Title: "conv"}
	require.NoError(t, chats.CreateConversation(context.Background(), conv))
	for i, ts := range msgTimes {
		require.NoError(t, chats.CreateMessage(context.Background(), &model.ChatMessage{
			ConversationID: conv.ID,
			UserID:         userID,
			Role:           "user",
			Content:        fmt.Sprintf("msg %d", i),
			CreatedAt:      ts,
		}))
	}
	return conv.ID
}

func TestCollectCapsJournalEntries(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New()

	contents := make([]string, 15)
	for i := range contents {
		contents[i] = fmt.Sprintf("entry %d", i)
	}
	seedJournalEntries(t, db, userID, contents)

	content, err := newAggregator(db).Collect(context.Background(), userID, 7)
	require.NoError(t, err)
	assert.Len(t, content.JournalEntries, maxJournalEntries)
}

func TestCollectFiltersByLookbackWindow(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New()
	journals := repository.NewJournalRepository(db)

	recent := &model.JournalEntry{UserID: userID, Title: "recent", Content: "in window"}
	require.NoError(t, journals.Create(context.Background(), recent))

	old := &model.JournalEntry{
		UserID:    userID,
		Title:     "old",
		Content:   "outside window",
		CreatedAt: time.Now().AddDate(0, 0, -30),
	}
	require.NoError(t, journals.Create(context.Background(), old))

	content, err := newAggregator(db).Collect(context.Background(), userID, 7)
	require.NoError(t, err)
	require.Len(t, content.JournalEntries, 1)
	assert.Equal(t, "recent", content.JournalEntries[0].Title)
}

func TestCollectCapsMessagesNewestFirst(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New()

	// Two conversations with interleaved timestamps. The aggregate cap
	// applies after merging, so only the 20 newest survive.
	now := time.Now()
	var a, b []time.Time
	for i := 0; i < 15; i++ {
		a = append(a, now.Add(-time.Duration(2*i)*time.Minute))
		b = append(b, now.Add(-time.Duration(2*i+1)*time.Minute))
	}
	seedConversation(t, db, userID, a)
	seedConversation(t, db, userID, b)

	content, err := newAggregator(db).Collect(context.Background(), userID, 7)
	require.NoError(t, err)
	require.Len(t, content.Messages, maxMessages)

	for i := 1; i < len(content.Messages); i++ {
		assert.False(t, content.Messages[i].CreatedAt.After(content.Messages[i-1].CreatedAt),
			"messages must be newest-first")
	}
	// The newest message overall comes first.
	assert.WithinDuration(t, now, content.Messages[0].CreatedAt, time.Second)
}

func TestSufficient(t *testing.T) {
	tests := []struct {
		name     string
		journals int
		messages int
		want     bool
	}{
		{"empty", 0, 0, false},
		{"one journal entry", 1, 0, false},
		{"two journal entries", 2, 0, true},
		{"four messages", 0, 4, false},
		{"five messages", 0, 5, true},
		{"one of each", 1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := AggregatedContent{
				JournalEntries: make([]model.JournalEntry, tt.journals),
				Messages:       make([]model.ChatMessage, tt.messages),
			}
			assert.Equal(t, tt.want, c.Sufficient())
		})
	}
}
