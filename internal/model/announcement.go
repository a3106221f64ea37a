package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnnouncementStatus string

const (
	AnnouncementStatusPending   AnnouncementStatus = "pending"
	AnnouncementStatusScheduled AnnouncementStatus = "scheduled"
	AnnouncementStatusActive    AnnouncementStatus = "active"
	AnnouncementStatusExpired   AnnouncementStatus = "expired"
	AnnouncementStatusRemoved   AnnouncementStatus = "removed"
)

type Announcement struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string             `gorm:"size:200;not null" json:"title"`
	Body         string             `gorm:"type:text;not null" json:"body"`
	Department   string             `gorm:"size:100;index" json:"department"`
	Status       AnnouncementStatus `gorm:"size:20;default:'pending';index" json:"status"`
	StartDate    time.Time          `gorm:"not null;index" json:"start_date"`
	EndDate      time.Time          `gorm:"not null" json:"end_date"`
	CreatedByUID uuid.UUID          `gorm:"type:uuid;not null" json:"created_by_uid"`
	AnnouncerID  *uuid.UUID         `gorm:"type:uuid;index" json:"announcer_id,omitempty"`
	Announcer    *Announcer         `gorm:"foreignKey:AnnouncerID" json:"announcer,omitempty"`
	IsUrgent     bool               `gorm:"default:false" json:"is_urgent"`
	PhotoPaths   []string           `gorm:"serializer:json" json:"photo_paths"`
	ViewCount    int                `gorm:"not null;default:0" json:"view_count"`
	ClickCount   int                `gorm:"not null;default:0" json:"click_count"`
	CreatedAt    time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
