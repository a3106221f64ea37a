package handler

import (
	"net/http"

	"github.com/campusgo/admin-backend/internal/dto"
	"github.com/campusgo/admin-backend/internal/service"
	"github.com/campusgo/admin-backend/pkg/response"
	"github.com/campusgo/admin-backend/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PostHandler struct {
	postService       service.PostService
	moderationService service.ModerationService
}

func NewPostHandler(postService service.PostService, moderationService service.ModerationService) *PostHandler {
	return &PostHandler{
		postService:       postService,
		moderationService: moderationService,
	}
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	var query dto.PostFilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	posts, total, err := h.postService.ListPosts(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedResponse{
		Data:  posts,
		Total: total,
		Page:  query.Page,
		Limit: query.Limit,
	})
}

func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	post, err := h.postService.GetPost(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) RemovePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	resolved, err := h.postService.RemovePost(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "post removed",
		"resolved_reports": resolved,
	})
}

// WarnPostAuthor warns the post's author and takes the post down in the
// same transaction.
func (h *PostHandler) WarnPostAuthor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
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

	res, err := h.moderationService.WarnUserForPost(c.Request.Context(), id, adminID, input.Note)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
