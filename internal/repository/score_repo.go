package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lumenhq/lumen-backend/internal/model"
	"github.com/lumenhq/lumen-backend/pkg/apperror"
	"gorm.io/gorm"
)

type ScoreRepository interface {
	Create(ctx context.Context, score *model.CategoryScore) error
	FindByCategory(ctx context.Context, userID uuid.UUID, categoryID, periodType string, limit int) ([]model.CategoryScore, error)
	FindByPeriod(ctx context.Context, userID uuid.UUID, categoryID, periodType string, periodStart time.Time) (*model.CategoryScore, error)
}

type scoreRepository struct {
	db *gorm.DB
}

func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

// Create inserts one score row. A second write for the same (user, category,
// periodType, periodStart) hits the composite unique index and comes back as
// ErrConflict; the caller treats that as "already scored, fetch existing".
func (r *scoreRepository) Create(ctx context.Context, score *model.CategoryScore) error {
	err := r.db.WithContext(ctx).Create(score).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.New(0, "score already exists for this period", apperror.ErrConflict)
	}
	return err
}

func (r *scoreRepository) FindByCategory(ctx context.Context, userID uuid.UUID, categoryID, periodType string, limit int) ([]model.CategoryScore, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ? AND category_id = ?", userID, categoryID)
	if periodType != "" {
		q = q.Where("period_type = ?", periodType)
	}

	var scores []model.CategoryScore
	err := q.Order("period_start DESC").Limit(limit).Find(&scores).Error
	return scores, err
}

func (r *scoreRepository) FindByPeriod(ctx context.Context, userID uuid.UUID, categoryID, periodType string, periodStart time.Time) (*model.CategoryScore, error) {
	var score model.CategoryScore
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND category_id = ? AND period_type = ? AND period_start = ?",
			userID, categoryID, periodType, periodStart).
		First(&score).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &score, nil
}
