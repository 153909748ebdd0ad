package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lumenhq/lumen-backend/internal/model"
	"gorm.io/gorm"
)

type InsightRepository interface {
	FindByCategory(ctx context.Context, userID uuid.UUID, categoryID string, limit int) ([]model.CategoryInsight, error)
}

type insightRepository struct {
	db *gorm.DB
}

func NewInsightRepository(db *gorm.DB) InsightRepository {
	return &insightRepository{db: db}
}

func (r *insightRepository) FindByCategory(ctx context.Context, userID uuid.UUID, categoryID string, limit int) ([]model.CategoryInsight, error) {
	var insights []model.CategoryInsight
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Order("created_at DESC").
		Limit(limit).
		Find(&insights).Error
	return insights, err
}
