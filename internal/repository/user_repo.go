package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lumenhq/lumen-backend/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	EnsureUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	SelectCategories(ctx context.Context, userID uuid.UUID, categoryIDs []string) error
	SelectedCategories(ctx context.Context, userID uuid.UUID) ([]string, error)
	HasSelectedCategory(ctx context.Context, userID uuid.UUID, categoryID string) (bool, error)
	FindWithSelectedCategories(ctx context.Context) ([]uuid.UUID, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) EnsureUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user := &model.User{ID: id}
	if err := r.db.WithContext(ctx).FirstOrCreate(user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// SelectCategories replaces the user's selection atomically.
func (r *userRepository) SelectCategories(ctx context.Context, userID uuid.UUID, categoryIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.UserCategory{}).Error; err != nil {
			return err
		}
		for _, catID := range categoryIDs {
			row := model.UserCategory{UserID: userID, CategoryID: catID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SelectedCategories returns the ids in insertion order, which is the order
// the scoring loop walks them.
func (r *userRepository) SelectedCategories(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.UserCategory{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("category_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *userRepository) HasSelectedCategory(ctx context.Context, userID uuid.UUID, categoryID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserCategory{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) FindWithSelectedCategories(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.UserCategory{}).
		Distinct("user_id").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
