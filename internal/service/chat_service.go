package service

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/lumenhq/lumen-backend/internal/dto"
	"github.com/lumenhq/lumen-backend/internal/model"
	"github.com/lumenhq/lumen-backend/internal/repository"
	"github.com/lumenhq/lumen-backend/pkg/apperror"
)

type ChatService interface {
	CreateConversation(ctx context.Context, userID uuid.UUID, req dto.CreateConversationRequest) (*model.Conversation, error)
	ListConversations(ctx context.Context, userID uuid.UUID, limit int) ([]model.Conversation, error)
	CreateMessage(ctx context.Context, userID, conversationID uuid.UUID, req dto.CreateMessageRequest) (*model.ChatMessage, error)
	ListMessages(ctx context.Context, userID, conversationID uuid.UUID, limit int) ([]model.ChatMessage, error)
}

type chatService struct {
	chats repository.ChatRepository
}

func NewChatService(chats repository.ChatRepository) ChatService {
	return &chatService{chats: chats}
}

func (s *chatService) CreateConversation(ctx context.Context, userID uuid.UUID, req dto.CreateConversationRequest) (*model.Conversation, error) {
	conv := &model.Conversation{
		UserID: userID,
		Title:  req.Title,
	}
	if err := s.chats.CreateConversation(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *chatService) ListConversations(ctx context.Context, userID uuid.UUID, limit int) ([]model.Conversation, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.chats.FindConversations(ctx, userID, limit)
}

func (s *chatService) CreateMessage(ctx context.Context, userID, conversationID uuid.UUID, req dto.CreateMessageRequest) (*model.ChatMessage, error) {
	if err := s.ownConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	msg := &model.ChatMessage{
		ConversationID: conversationID,
		UserID:         userID,
		Role:           req.Role,
		Content:        req.Content,
	}
	if err := s.chats.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *chatService) ListMessages(ctx context.Context, userID, conversationID uuid.UUID, limit int) ([]model.ChatMessage, error) {
	if err := s.ownConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.chats.FindMessages(ctx, conversationID, limit)
}

func (s *chatService) ownConversation(ctx context.Context, userID, conversationID uuid.UUID) error {
	conv, err := s.chats.FindConversationByID(ctx, conversationID)
	if err != nil {
		return apperror.New(http.StatusNotFound, "conversation not found", apperror.ErrNotFound)
	}
	if conv.UserID != userID {
		return apperror.New(http.StatusForbidden, "you do not own this conversation", apperror.ErrForbidden)
	}
	return nil
}
