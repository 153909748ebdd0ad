package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lumenhq/lumen-backend/internal/model"
	"github.com/lumenhq/lumen-backend/pkg/logger"
	"github.com/meilisearch/meilisearch-go"
)

const journalIndex = "journal_entries"

type SearchService interface {
	IndexEntry(entry *model.JournalEntry) error
	SearchEntries(userID uuid.UUID, query string, limit int) ([]uuid.UUID, error)
}

type searchService struct {
	client meilisearch.ServiceManager
	log    *logger.Logger
}

type journalDocument struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

func NewSearchService(client meilisearch.ServiceManager, log *logger.Logger) SearchService {
	s := &searchService{client: client, log: log}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	_, err := s.client.Index(journalIndex).UpdateSettings(&meilisearch.Settings{
		SearchableAttributes: []string{"title", "content"},
		FilterableAttributes: []string{"user_id"},
		SortableAttributes:   []string{"created_at"},
	})
	if err != nil {
		s.log.Warn("failed to configure journal search index", "error", err)
	}
}

func (s *searchService) IndexEntry(entry *model.JournalEntry) error {
	doc := journalDocument{
		ID:        entry.ID.String(),
		UserID:    entry.UserID.String(),
		Title:     entry.Title,
		Content:   entry.Content,
		CreatedAt: entry.CreatedAt.Unix(),
	}
	_, err := s.client.Index(journalIndex).AddDocuments([]journalDocument{doc})
	return err
}

// SearchEntries runs a server-side search scoped to the user and returns
// matching entry ids; callers hydrate rows from the database.
func (s *searchService) SearchEntries(userID uuid.UUID, query string, limit int) ([]uuid.UUID, error) {
	resp, err := s.client.Index(journalIndex).Search(query, &meilisearch.SearchRequest{
		Filter: fmt.Sprintf("user_id = %q", userID.String()),
		Limit:  int64(limit),
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		doc, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		idStr, ok := doc["id"].(string)
		if !ok {
			continue
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
