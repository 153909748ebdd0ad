package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lumenhq/lumen-backend/internal/model"
	"gorm.io/gorm"
)

type MemoryRepository interface {
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]model.MemoryFact, error)
	CountActiveByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type memoryRepository struct {
	db *gorm.DB
}

func NewMemoryRepository(db *gorm.DB) MemoryRepository {
	return &memoryRepository{db: db}
}

func (r *memoryRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]model.MemoryFact, error) {
	var facts []model.MemoryFact
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.FactStatusActive).
		Order("confidence DESC").
		Find(&facts).Error
	return facts, err
}

func (r *memoryRepository) CountActiveByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.MemoryFact{}).
		Where("user_id = ? AND status = ?", userID, model.FactStatusActive).
		Count(&count).Error
	return count, err
}
