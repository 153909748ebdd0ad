package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lumenhq/lumen-backend/internal/model"
	"gorm.io/gorm"
)

type MoodRepository interface {
	Create(ctx context.Context, entry *model.MoodEntry) error
	FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.MoodEntry, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type moodRepository struct {
	db *gorm.DB
}

func NewMoodRepository(db *gorm.DB) MoodRepository {
	return &moodRepository{db: db}
}

func (r *moodRepository) Create(ctx context.Context, entry *model.MoodEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *moodRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.MoodEntry, error) {
	var entries []model.MoodEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *moodRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.MoodEntry{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
