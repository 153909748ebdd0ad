package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lumenhq/lumen-backend/internal/model"
	"gorm.io/gorm"
)

type JournalRepository interface {
	Create(ctx context.Context, entry *model.JournalEntry) error
	FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.JournalEntry, error)
	FindSince(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]model.JournalEntry, error)
	FindByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]model.JournalEntry, error)
	EntryDates(ctx context.Context, userID uuid.UUID) ([]time.Time, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type journalRepository struct {
	db *gorm.DB
}

func NewJournalRepository(db *gorm.DB) JournalRepository {
	return &journalRepository{db: db}
}

func (r *journalRepository) Create(ctx context.Context, entry *model.JournalEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *journalRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.JournalEntry, error) {
	var entries []model.JournalEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *journalRepository) FindSince(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]model.JournalEntry, error) {
	var entries []model.JournalEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *journalRepository) FindByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]model.JournalEntry, error) {
	if len(ids) == 0 {
		return []model.JournalEntry{}, nil
	}
	var entries []model.JournalEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// EntryDates returns creation timestamps newest-first, for streak math.
func (r *journalRepository) EntryDates(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&model.JournalEntry{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("created_at", &dates).Error
	return dates, err
}

func (r *journalRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.JournalEntry{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
