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

type AnnouncementHandler struct {
	announcementService service.AnnouncementService
}

func NewAnnouncementHandler(announcementService service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	var input dto.CreateAnnouncementInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	photos, err := collectPhotos(c, "photos")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.announcementService.CreateAnnouncement(c.Request.Context(), input, adminID, photos)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// collectPhotos opens every file under the given multipart field. The
// underlying files stay open until the request completes; gin closes the
// multipart form afterwards.
func collectPhotos(c *gin.Context, field string) ([]*dto.PhotoFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// No multipart body at all is fine, photos are optional.
		return nil, nil
	}

	var photos []*dto.PhotoFile
	for _, fileHeader := range form.File[field] {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, err
		}
		photos = append(photos, &dto.PhotoFile{
			Reader:   file,
			FileName: fileHeader.Filename,
		})
	}
	return photos, nil
}

func (h *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	var query dto.AnnouncementFilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	announcements, total, err := h.announcementService.ListAnnouncements(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedResponse{
		Data:  announcements,
		Total: total,
		Page:  query.Page,
		Limit: query.Limit,
	})
}

func (h *AnnouncementHandler) GetAnnouncement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcement id"})
		return
	}

	res, err := h.announcementService.GetAnnouncement(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AnnouncementHandler) UpdateAnnouncement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcement id"})
		return
	}

	var input dto.UpdateAnnouncementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.announcementService.UpdateAnnouncement(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcement id"})
		return
	}

	if err := h.announcementService.DeleteAnnouncement(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "announcement removed"})
}

func (h *AnnouncementHandler) UpcomingUrgent(c *gin.Context) {
	res, err := h.announcementService.UpcomingUrgent(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": res})
}
