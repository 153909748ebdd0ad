package service

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/lumenhq/lumen-backend/internal/dto"
	"github.com/lumenhq/lumen-backend/internal/model"
	"github.com/lumenhq/lumen-backend/internal/repository"
	"github.com/lumenhq/lumen-backend/pkg/apperror"
	"github.com/lumenhq/lumen-backend/pkg/logger"
)

type JournalService interface {
	CreateEntry(ctx context.Context, userID uuid.UUID, req dto.CreateJournalEntryRequest) (*model.JournalEntry, error)
	ListEntries(ctx context.Context, userID uuid.UUID, limit int) ([]model.JournalEntry, error)
	SearchEntries(ctx context.Context, userID uuid.UUID, query string, limit int) ([]model.JournalEntry, error)
	CreateMood(ctx context.Context, userID uuid.UUID, req dto.CreateMoodEntryRequest) (*model.MoodEntry, error)
	ListMoods(ctx context.Context, userID uuid.UUID, limit int) ([]model.MoodEntry, error)
}

type journalService struct {
	journals repository.JournalRepository
	moods    repository.MoodRepository
	search   SearchService
	log      *logger.Logger
}

func NewJournalService(journals repository.JournalRepository, moods repository.MoodRepository, search SearchService, log *logger.Logger) JournalService {
	return &journalService{journals: journals, moods: moods, search: search, log: log}
}

func (s *journalService) CreateEntry(ctx context.Context, userID uuid.UUID, req dto.CreateJournalEntryRequest) (*model.JournalEntry, error) {
	entry := &model.JournalEntry{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
	}
	if err := s.journals.Create(ctx, entry); err != nil {
		return nil, err
	}

	// Search indexing is best-effort; losing it never fails the write.
	if err := s.search.IndexEntry(entry); err != nil {
		s.log.Warn("failed to index journal entry", "entry_id", entry.ID, "error", err)
	}

	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, userID uuid.UUID, limit int) ([]model.JournalEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	return s.journals.FindByUser(ctx, userID, limit)
}

func (s *journalService) SearchEntries(ctx context.Context, userID uuid.UUID, query string, limit int) ([]model.JournalEntry, error) {
	if query == "" {
		return nil, apperror.New(http.StatusBadRequest, "query is required", apperror.ErrBadRequest)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	ids, err := s.search.SearchEntries(userID, query, limit)
	if err != nil {
		return nil, err
	}
	return s.journals.FindByIDs(ctx, userID, ids)
}

func (s *journalService) CreateMood(ctx context.Context, userID uuid.UUID, req dto.CreateMoodEntryRequest) (*model.MoodEntry, error) {
	entry := &model.MoodEntry{
		UserID:    userID,
		Mood:      req.Mood,
		Intensity: req.Intensity,
		Note:      req.Note,
	}
	if err := s.moods.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *journalService) ListMoods(ctx context.Context, userID uuid.UUID, limit int) ([]model.MoodEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	return s.moods.FindByUser(ctx, userID, limit)
}
