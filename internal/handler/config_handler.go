package handler

import (
	"net/http"

	"github.com/campusgo/admin-backend/internal/dto"
	"github.com/campusgo/admin-backend/internal/service"
	"github.com/campusgo/admin-backend/pkg/response"
	"github.com/campusgo/admin-backend/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ConfigHandler struct {
	configService service.ConfigService
}

func NewConfigHandler(configService service.ConfigService) *ConfigHandler {
	return &ConfigHandler{configService: configService}
}

func (h *ConfigHandler) GetConfig(c *gin.Context) {
	cfg, err := h.configService.Get(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, cfg)
}

// UpdateConfig applies a full configuration payload. The request must carry
// the version the admin was editing; a stale version gets 409 and the client
// reloads before retrying.
func (h *ConfigHandler) UpdateConfig(c *gin.Context) {
	var input dto.UpdateConfigInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	cfg, err := h.configService.Update(c.Request.Context(), input, adminID.String())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, cfg)
}
