package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lumenhq/lumen-backend/internal/dto"
	"github.com/lumenhq/lumen-backend/internal/service"
	"github.com/lumenhq/lumen-backend/pkg/apperror"
	"github.com/lumenhq/lumen-backend/pkg/response"
	"github.com/lumenhq/lumen-backend/pkg/validator"
	"github.com/redis/go-redis/v9"
)

type ScoreHandler struct {
	scoring         *service.ScoringService
	redis           *redis.Client
	rateLimit       time.Duration
	defaultLookback int
}

func NewScoreHandler(scoring *service.ScoringService, redisClient *redis.Client, rateLimit time.Duration, defaultLookback int) *ScoreHandler {
	return &ScoreHandler{
		scoring:         scoring,
		redis:           redisClient,
		rateLimit:       rateLimit,
		defaultLookback: defaultLookback,
	}
}

// Generate scores one category for the current period and persists the row.
// The request body is optional; period type defaults to daily.
func (h *ScoreHandler) Generate(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	categoryID := c.Param("categoryId")

	var req dto.GenerateScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}
	if req.LookbackDays == 0 {
		req.LookbackDays = h.defaultLookback
	}

	allowed, err := service.CheckAndSetRateLimit(c.Request.Context(), h.redis, userID, "score:"+categoryID, h.rateLimit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if !allowed {
		response.ResponseError(c, apperror.ErrRateLimitExceeded)
		return
	}

	score, err := h.scoring.Generate(c.Request.Context(), userID, categoryID, req.PeriodType, req.LookbackDays)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, score)
}

// History lists persisted scores newest-first.
func (h *ScoreHandler) History(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var filter dto.ScoreHistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	scores, err := h.scoring.History(c.Request.Context(), userID, c.Param("categoryId"), filter.Period, filter.Limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, scores)
}

func (h *ScoreHandler) WeeklySummary(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	summary, err := h.scoring.WeeklySummary(c.Request.Context(), userID, c.Param("categoryId"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
