package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lumenhq/lumen-backend/internal/model"
	"gorm.io/gorm"
)

type ReflectionRepository interface {
	Create(ctx context.Context, reflection *model.PersonalityReflection) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PersonalityReflection, error)
	FindLatestByUser(ctx context.Context, userID uuid.UUID) (*model.PersonalityReflection, error)
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*model.PersonalityReflection, error)
	UpdateProgress(ctx context.Context, id uuid.UUID, status string, progress int, currentSection string) error
	MarkCompleted(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	MarkFailed(ctx context.Context, id uuid.UUID, message string) error
	FailStaleProcessing(ctx context.Context, cutoff time.Time, message string) (int64, error)
}

type reflectionRepository struct {
	db *gorm.DB
}

func NewReflectionRepository(db *gorm.DB) ReflectionRepository {
	return &reflectionRepository{db: db}
}

func (r *reflectionRepository) Create(ctx context.Context, reflection *model.PersonalityReflection) error {
	return r.db.WithContext(ctx).Create(reflection).Error
}

func (r *reflectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PersonalityReflection, error) {
	var rec model.PersonalityReflection
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *reflectionRepository) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*model.PersonalityReflection, error) {
	var rec model.PersonalityReflection
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// FindActiveByUser returns the pending/processing record, if any. This is
// the handler-level guard behind the one-active-generation invariant; unlike
// the coordinator's in-memory set it survives process restarts.
func (r *reflectionRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*model.PersonalityReflection, error) {
	var rec model.PersonalityReflection
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID,
			[]string{model.ReflectionPending, model.ReflectionProcessing}).
		Order("created_at DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *reflectionRepository) UpdateProgress(ctx context.Context, id uuid.UUID, status string, progress int, currentSection string) error {
	return r.db.WithContext(ctx).
		Model(&model.PersonalityReflection{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":          status,
			"progress":        progress,
			"current_section": currentSection,
		}).Error
}

// MarkCompleted flips the record to completed together with all content
// fields in one update.
func (r *reflectionRepository) MarkCompleted(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	fields["status"] = model.ReflectionCompleted
	fields["progress"] = 100
	fields["current_section"] = nil
	return r.db.WithContext(ctx).
		Model(&model.PersonalityReflection{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *reflectionRepository) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	return r.db.WithContext(ctx).
		Model(&model.PersonalityReflection{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":          model.ReflectionFailed,
			"progress":        0,
			"current_section": nil,
			"error_message":   message,
		}).Error
}

// FailStaleProcessing fails records abandoned mid-processing, e.g. by a
// process restart. Run periodically by the reaper agent.
func (r *reflectionRepository) FailStaleProcessing(ctx context.Context, cutoff time.Time, message string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.PersonalityReflection{}).
		Where("status = ? AND updated_at < ?", model.ReflectionProcessing, cutoff).
		Updates(map[string]interface{}{
			"status":        model.ReflectionFailed,
			"progress":      0,
			"error_message": message,
		})
	return res.RowsAffected, res.Error
}
