package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumenhq/lumen-backend/internal/dto"
	"github.com/lumenhq/lumen-backend/internal/service"
	"github.com/lumenhq/lumen-backend/pkg/response"
	"github.com/lumenhq/lumen-backend/pkg/validator"
)

type CategoryHandler struct {
	categories service.CategoryService
}

func NewCategoryHandler(categories service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.categories.ListCategories(c.Request.Context()))
}

func (h *CategoryHandler) ListSelected(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	ids, err := h.categories.ListSelected(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category_ids": ids})
}

func (h *CategoryHandler) SelectCategories(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.SelectCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.categories.SelectCategories(c.Request.Context(), userID, req.CategoryIDs); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "categories updated"})
}

func (h *CategoryHandler) ListInsights(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var filter dto.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	insights, err := h.categories.ListInsights(c.Request.Context(), userID, c.Param("categoryId"), filter.Limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, insights)
}

func (h *CategoryHandler) ListMemoryFacts(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	facts, err := h.categories.ListMemoryFacts(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, facts)
}
