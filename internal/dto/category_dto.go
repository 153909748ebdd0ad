package dto

type SelectCategoriesRequest struct {
	CategoryIDs []string `json:"category_ids" binding:"required,min=1,dive,required"`
}
