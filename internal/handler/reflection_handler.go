package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lumenhq/lumen-backend/internal/dto"
	"github.com/lumenhq/lumen-backend/internal/service"
	"github.com/lumenhq/lumen-backend/pkg/apperror"
	"github.com/lumenhq/lumen-backend/pkg/response"
	"github.com/lumenhq/lumen-backend/pkg/validator"
	"github.com/redis/go-redis/v9"
)

type ReflectionHandler struct {
	reflections *service.ReflectionService
	redis       *redis.Client
	rateLimit   time.Duration
}

func NewReflectionHandler(reflections *service.ReflectionService, redisClient *redis.Client, rateLimit time.Duration) *ReflectionHandler {
	return &ReflectionHandler{
		reflections: reflections,
		redis:       redisClient,
		rateLimit:   rateLimit,
	}
}

// Create starts a reflection generation job, or returns the in-flight
// record if one exists. Always 200; the record's status tells the client
// whether to poll.
func (h *ReflectionHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateReflectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	allowed, err := service.CheckAndSetRateLimit(c.Request.Context(), h.redis, userID, "reflection", h.rateLimit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if !allowed {
		response.ResponseError(c, apperror.ErrRateLimitExceeded)
		return
	}

	rec, err := h.reflections.Request(c.Request.Context(), userID, req.Tier)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *ReflectionHandler) GetLatest(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	rec, err := h.reflections.Latest(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// GetByID is the polling endpoint.
func (h *ReflectionHandler) GetByID(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reflection id"})
		return
	}

	rec, err := h.reflections.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}
