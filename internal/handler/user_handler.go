package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/campusgo/admin-backend/internal/dto"
	"github.com/campusgo/admin-backend/internal/service"
	"github.com/campusgo/admin-backend/pkg/response"
	"github.com/campusgo/admin-backend/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// warnCooldown throttles repeat warnings against the same target so a
// double-click does not stack two strikes.
const warnCooldown = 5 * time.Second

type UserHandler struct {
	userService       service.UserService
	moderationService service.ModerationService
	redisClient       *redis.Client
}

func NewUserHandler(userService service.UserService, moderationService service.ModerationService, redisClient *redis.Client) *UserHandler {
	return &UserHandler{
		userService:       userService,
		moderationService: moderationService,
		redisClient:       redisClient,
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	var query dto.UserFilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	users, total, err := h.userService.ListUsers(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedResponse{
		Data:  users,
		Total: total,
		Page:  query.Page,
		Limit: query.Limit,
	})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var input dto.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) WarnUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.WarnUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	action := "warn:" + id.String()
	allowed, err := service.CheckAndSetRateLimit(c.Request.Context(), h.redisClient, adminID, action, warnCooldown)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if !allowed {
		ttl, _ := service.GetRateLimitTTL(c.Request.Context(), h.redisClient, adminID, action)
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": fmt.Sprintf("warning already in progress for this user. Please wait %.0f seconds", ttl.Seconds()),
		})
		return
	}

	res, err := h.moderationService.WarnUser(c.Request.Context(), id, adminID, input.Note)
	if err != nil {
		_ = service.ClearRateLimit(c.Request.Context(), h.redisClient, adminID, action) // Rollback cooldown
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *UserHandler) BanUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.BanUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	user, err := h.moderationService.SetUserBanned(c.Request.Context(), id, adminID, input.Banned)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) SuspendUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.SuspendUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	user, err := h.moderationService.SetUserSuspended(c.Request.Context(), id, adminID, input.Suspended)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) RecentModerationActions(c *gin.Context) {
	limit := 50
	actions, err := h.moderationService.RecentActions(c.Request.Context(), limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": actions})
}
