package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/lumenhq/lumen-backend/internal/model"
	"github.com/lumenhq/lumen-backend/internal/repository"
	"github.com/lumenhq/lumen-backend/pkg/apperror"
)

type CategoryService interface {
	ListCategories(ctx context.Context) []CategoryDefinition
	ListSelected(ctx context.Context, userID uuid.UUID) ([]string, error)
	SelectCategories(ctx context.Context, userID uuid.UUID, categoryIDs []string) error
	ListInsights(ctx context.Context, userID uuid.UUID, categoryID string, limit int) ([]model.CategoryInsight, error)
	ListMemoryFacts(ctx context.Context, userID uuid.UUID) ([]model.MemoryFact, error)
}

type categoryService struct {
	users    repository.UserRepository
	insights repository.InsightRepository
	memories repository.MemoryRepository
}

func NewCategoryService(users repository.UserRepository, insights repository.InsightRepository, memories repository.MemoryRepository) CategoryService {
	return &categoryService{users: users, insights: insights, memories: memories}
}

func (s *categoryService) ListCategories(ctx context.Context) []CategoryDefinition {
	return Categories()
}

func (s *categoryService) ListSelected(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.users.SelectedCategories(ctx, userID)
}

func (s *categoryService) SelectCategories(ctx context.Context, userID uuid.UUID, categoryIDs []string) error {
	for _, id := range categoryIDs {
		if _, ok := CategoryByID(id); !ok {
			return apperror.New(http.StatusBadRequest, fmt.Sprintf("unknown category %q", id), apperror.ErrBadRequest)
		}
	}

	if _, err := s.users.EnsureUser(ctx, userID); err != nil {
		return err
	}
	return s.users.SelectCategories(ctx, userID, categoryIDs)
}

func (s *categoryService) ListInsights(ctx context.Context, userID uuid.UUID, categoryID string, limit int) ([]model.CategoryInsight, error) {
	if _, ok := CategoryByID(categoryID); !ok {
		return nil, apperror.New(http.StatusNotFound, fmt.Sprintf("unknown category %q", categoryID), apperror.ErrNotFound)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.insights.FindByCategory(ctx, userID, categoryID, limit)
}

func (s *categoryService) ListMemoryFacts(ctx context.Context, userID uuid.UUID) ([]model.MemoryFact, error) {
	return s.memories.FindActiveByUser(ctx, userID)
}
