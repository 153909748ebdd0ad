package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lumenhq/lumen-backend/internal/model"
	"github.com/lumenhq/lumen-backend/internal/repository"
)

// Caps bound LLM input size, nothing else.
const (
	maxJournalEntries    = 10
	maxConversations     = 3
	maxMessages          = 20
	minSufficientJournal = 2
	minSufficientMessage = 5
)

// AggregatedContent is a user's recent material within the lookback window,
// newest-first and capped.
type AggregatedContent struct {
	JournalEntries []model.JournalEntry
	Messages       []model.ChatMessage
}

// Sufficient reports whether there is enough material to justify an LLM
// call. Below this the caller returns the insufficient-data sentinel
// instead of scoring.
func (c AggregatedContent) Sufficient() bool {
	return len(c.JournalEntries) >= minSufficientJournal || len(c.Messages) >= minSufficientMessage
}

// Aggregator gathers recent user content for the scoring engine. Pure read,
// no side effects.
type Aggregator struct {
	journals repository.JournalRepository
	chats    repository.ChatRepository
}

func NewAggregator(journals repository.JournalRepository, chats repository.ChatRepository) *Aggregator {
	return &Aggregator{journals: journals, chats: chats}
}

func (a *Aggregator) Collect(ctx context.Context, userID uuid.UUID, lookbackDays int) (*AggregatedContent, error) {
	since := time.Now().AddDate(0, 0, -lookbackDays)

	entries, err := a.journals.FindSince(ctx, userID, since, maxJournalEntries)
	if err != nil {
		return nil, err
	}

	convs, err := a.chats.FindConversations(ctx, userID, maxConversations)
	if err != nil {
		return nil, err
	}

	var messages []model.ChatMessage
	for _, conv := range convs {
		msgs, err := a.chats.FindMessagesSince(ctx, conv.ID, since, maxMessages)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msgs...)
	}

	// Newest-first across conversations before capping the aggregate.
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
	if len(messages) > maxMessages {
		messages = messages[:maxMessages]
	}

	return &AggregatedContent{
		JournalEntries: entries,
		Messages:       messages,
	}, nil
}
