package dto

type CreateReflectionRequest struct {
	Tier string `json:"tier" binding:"required,oneof=free standard premium"`
}
