package handler

import (
	"net/http"

	"github.com/campusgo/admin-backend/internal/dto"
	"github.com/campusgo/admin-backend/internal/model"
	"github.com/campusgo/admin-backend/internal/service"
	"github.com/campusgo/admin-backend/pkg/response"
	"github.com/campusgo/admin-backend/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AnnouncerHandler struct {
	announcerService service.AnnouncerService
}

func NewAnnouncerHandler(announcerService service.AnnouncerService) *AnnouncerHandler {
	return &AnnouncerHandler{announcerService: announcerService}
}

func (h *AnnouncerHandler) CreateAnnouncer(c *gin.Context) {
	var input dto.CreateAnnouncerInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	avatar := openAvatar(c)
	res, err := h.announcerService.CreateAnnouncer(c.Request.Context(), input, avatar)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func openAvatar(c *gin.Context) *dto.PhotoFile {
	fileHeader, err := c.FormFile("avatar")
	if err != nil || fileHeader == nil {
		return nil
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil
	}
	return &dto.PhotoFile{
		Reader:   file,
		FileName: fileHeader.Filename,
	}
}

func (h *AnnouncerHandler) ListAnnouncers(c *gin.Context) {
	var query dto.AnnouncerFilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	announcers, total, err := h.announcerService.ListAnnouncers(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedResponse{
		Data:  announcers,
		Total: total,
		Page:  query.Page,
		Limit: query.Limit,
	})
}

func (h *AnnouncerHandler) GetAnnouncer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcer id"})
		return
	}

	res, err := h.announcerService.GetAnnouncer(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AnnouncerHandler) UpdateAnnouncer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcer id"})
		return
	}

	var input dto.UpdateAnnouncerInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	avatar := openAvatar(c)
	res, err := h.announcerService.UpdateAnnouncer(c.Request.Context(), id, input, avatar)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AnnouncerHandler) ActivateAnnouncer(c *gin.Context) {
	h.setStatus(c, model.AnnouncerStatusActive)
}

func (h *AnnouncerHandler) DeactivateAnnouncer(c *gin.Context) {
	h.setStatus(c, model.AnnouncerStatusInactive)
}

func (h *AnnouncerHandler) setStatus(c *gin.Context, status model.AnnouncerStatus) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcer id"})
		return
	}

	if err := h.announcerService.SetAnnouncerStatus(c.Request.Context(), id, status); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "announcer " + string(status)})
}

func (h *AnnouncerHandler) ListAffiliations(c *gin.Context) {
	affiliations, err := h.announcerService.ListAffiliations(c.Request.Context(), c.Query("type"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": affiliations})
}
