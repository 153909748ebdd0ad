package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lumenhq/lumen-backend/internal/model"
	"gorm.io/gorm"
)

type ChatRepository interface {
	CreateConversation(ctx context.Context, conv *model.Conversation) error
	FindConversations(ctx context.Context, userID uuid.UUID, limit int) ([]model.Conversation, error)
	FindConversationByID(ctx context.Context, id uuid.UUID) (*model.Conversation, error)
	CreateMessage(ctx context.Context, msg *model.ChatMessage) error
	FindMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]model.ChatMessage, error)
	FindMessagesSince(ctx context.Context, conversationID uuid.UUID, since time.Time, limit int) ([]model.ChatMessage, error)
	FindNewestMessagesByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.ChatMessage, error)
	CountMessagesByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateConversation(ctx context.Context, conv *model.Conversation) error {
	return r.db.WithContext(ctx).Create(conv).Error
}

// FindConversations returns the user's conversations, most recently updated
// first.
func (r *chatRepository) FindConversations(ctx context.Context, userID uuid.UUID, limit int) ([]model.Conversation, error) {
	var convs []model.Conversation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&convs).Error
	return convs, err
}

func (r *chatRepository) FindConversationByID(ctx context.Context, id uuid.UUID) (*model.Conversation, error) {
	var conv model.Conversation
	if err := r.db.WithContext(ctx).First(&conv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *chatRepository) CreateMessage(ctx context.Context, msg *model.ChatMessage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		// Bump the conversation so it sorts as most recently active.
		return tx.Model(&model.Conversation{}).
			Where("id = ?", msg.ConversationID).
			Update("updated_at", time.Now()).Error
	})
}

func (r *chatRepository) FindMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

func (r *chatRepository) FindMessagesSince(ctx context.Context, conversationID uuid.UUID, since time.Time, limit int) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND created_at >= ?", conversationID, since).
		Order("created_at DESC").
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

func (r *chatRepository) FindNewestMessagesByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

func (r *chatRepository) CountMessagesByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ChatMessage{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
