package dto

import (
	"time"

	"github.com/campusgo/admin-backend/internal/model"
)

type SpawnLocationInput struct {
	Name      string  `json:"name" binding:"required,min=2,max=100"`
	Latitude  float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"required,min=-180,max=180"`
}

type CreateSpawnInput struct {
	Name           string               `json:"name" binding:"required,min=2,max=100"`
	Category       string               `json:"category" binding:"omitempty,max=50"`
	Rarity         string               `json:"rarity" binding:"required,oneof=common uncommon rare epic legendary"`
	CatchableCount int                  `json:"catchable_count" binding:"required,min=1"`
	Latitude       *float64             `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude      *float64             `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Locations      []SpawnLocationInput `json:"locations" binding:"omitempty,dive"`
	CatchRadius    float64              `json:"catch_radius" binding:"required,gt=0"`
	RevealRadius   float64              `json:"reveal_radius" binding:"required,gt=0"`
	Point          int                  `json:"point" binding:"omitempty,gte=0"`
	CoinValue      int                  `json:"coin_value" binding:"omitempty,gte=0"`
	StartTime      *time.Time           `json:"start_time"`
	EndTime        *time.Time           `json:"end_time"`
}

type UpdateSpawnInput struct {
	Name           string               `json:"name" binding:"omitempty,min=2,max=100"`
	Category       string               `json:"category" binding:"omitempty,max=50"`
	Rarity         string               `json:"rarity" binding:"omitempty,oneof=common uncommon rare epic legendary"`
	CatchableCount *int                 `json:"catchable_count" binding:"omitempty,min=1"`
	Latitude       *float64             `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude      *float64             `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Locations      []SpawnLocationInput `json:"locations" binding:"omitempty,dive"`
	CatchRadius    *float64             `json:"catch_radius" binding:"omitempty,gt=0"`
	RevealRadius   *float64             `json:"reveal_radius" binding:"omitempty,gt=0"`
	Point          *int                 `json:"point" binding:"omitempty,gte=0"`
	CoinValue      *int                 `json:"coin_value" binding:"omitempty,gte=0"`
	StartTime      *time.Time           `json:"start_time"`
	EndTime        *time.Time           `json:"end_time"`
}

type SpawnFilterQuery struct {
	PaginationQuery
	Category string `form:"category"`
	Rarity   string `form:"rarity" binding:"omitempty,oneof=common uncommon rare epic legendary"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive scheduled"`
}

type SpawnResponse struct {
	*model.ARSpawn
	EffectiveStatus model.SpawnStatus `json:"effective_status"`
}
