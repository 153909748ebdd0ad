package dto

type CreateConversationRequest struct {
	Title string `json:"title" binding:"omitempty,max=255"`
}

type CreateMessageRequest struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required,min=1"`
}
