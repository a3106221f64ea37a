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

type ARSpawnHandler struct {
	spawnService service.ARSpawnService
}

func NewARSpawnHandler(spawnService service.ARSpawnService) *ARSpawnHandler {
	return &ARSpawnHandler{spawnService: spawnService}
}

func (h *ARSpawnHandler) CreateSpawn(c *gin.Context) {
	var input dto.CreateSpawnInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.spawnService.CreateSpawn(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *ARSpawnHandler) ListSpawns(c *gin.Context) {
	var query dto.SpawnFilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	spawns, total, err := h.spawnService.ListSpawns(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedResponse{
		Data:  spawns,
		Total: total,
		Page:  query.Page,
		Limit: query.Limit,
	})
}

func (h *ARSpawnHandler) GetSpawn(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid spawn id"})
		return
	}

	res, err := h.spawnService.GetSpawn(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ARSpawnHandler) UpdateSpawn(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid spawn id"})
		return
	}

	var input dto.UpdateSpawnInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.spawnService.UpdateSpawn(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ARSpawnHandler) DeactivateSpawn(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid spawn id"})
		return
	}

	if err := h.spawnService.DeactivateSpawn(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "spawn deactivated"})
}
