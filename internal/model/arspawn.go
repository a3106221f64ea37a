package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SpawnStatus string

const (
	SpawnStatusActive    SpawnStatus = "active"
	SpawnStatusInactive  SpawnStatus = "inactive"
	SpawnStatusScheduled SpawnStatus = "scheduled"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// CatchableRange is the allowed catchable-count range for a rarity tier.
type CatchableRange struct {
	Min int
	Max int
}

var catchableRanges = map[Rarity]CatchableRange{
	RarityCommon:    {Min: 20, Max: 100},
	RarityUncommon:  {Min: 10, Max: 50},
	RarityRare:      {Min: 5, Max: 20},
	RarityEpic:      {Min: 2, Max: 10},
	RarityLegendary: {Min: 1, Max: 3},
}

// RangeFor returns the catchable-count range for a rarity, and whether the
// rarity is known.
func RangeFor(r Rarity) (CatchableRange, bool) {
	rng, ok := catchableRanges[r]
	return rng, ok
}

// ARSpawn is an AR-model spawn point. Geometry is either a single lat/lng
// pair or a list of named fixed locations, never both.
type ARSpawn struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string          `gorm:"size:100;not null" json:"name"`
	Slug           string          `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Category       string          `gorm:"size:50;index" json:"category"`
	Rarity         Rarity          `gorm:"size:20;not null" json:"rarity"`
	CatchableCount int             `gorm:"not null" json:"catchable_count"`
	Latitude       *float64        `gorm:"type:decimal(10,8)" json:"latitude,omitempty"`
	Longitude      *float64        `gorm:"type:decimal(11,8)" json:"longitude,omitempty"`
	Locations      []SpawnLocation `gorm:"foreignKey:SpawnID;constraint:OnDelete:CASCADE" json:"locations,omitempty"`
	CatchRadius    float64         `gorm:"not null" json:"catch_radius"`
	RevealRadius   float64         `gorm:"not null" json:"reveal_radius"`
	Point          int             `gorm:"not null;default:0" json:"point"`
	CoinValue      int             `gorm:"not null;default:0" json:"coin_value"`
	StartTime      *time.Time      `json:"start_time,omitempty"`
	EndTime        *time.Time      `json:"end_time,omitempty"`
	Status         SpawnStatus     `gorm:"size:20;default:'active';index" json:"status"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *ARSpawn) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type SpawnLocation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SpawnID   uuid.UUID `gorm:"type:uuid;not null;index" json:"spawn_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Latitude  float64   `gorm:"not null;type:decimal(10,8)" json:"latitude"`
	Longitude float64   `gorm:"not null;type:decimal(11,8)" json:"longitude"`
}
