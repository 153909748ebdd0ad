package dto

type CreateJournalEntryRequest struct {
	Title   string `json:"title" binding:"omitempty,max=255"`
	Content string `json:"content" binding:"required,min=1"`
}

type CreateMoodEntryRequest struct {
	Mood      string `json:"mood" binding:"required,max=64"`
	Intensity int    `json:"intensity" binding:"required,min=1,max=10"`
	Note      string `json:"note" binding:"omitempty,max=2000"`
}

type ListFilter struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

type SearchFilter struct {
	Query string `form:"q" binding:"required"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}
