package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnnouncerStatus string

const (
	AnnouncerStatusActive   AnnouncerStatus = "active"
	AnnouncerStatusInactive AnnouncerStatus = "inactive"
)

type Announcer struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name               string          `gorm:"size:100;not null" json:"name"`
	Email              string          `gorm:"size:100;uniqueIndex;not null" json:"email"`
	AffiliationType    string          `gorm:"size:50;not null" json:"affiliation_type"`
	AffiliationName    string          `gorm:"size:100;not null" json:"affiliation_name"`
	AvatarURL          *string         `gorm:"type:text" json:"avatar_url,omitempty"`
	Status             AnnouncerStatus `gorm:"size:20;default:'active'" json:"status"`
	TotalAnnouncements int             `gorm:"not null;default:0" json:"total_announcements"`
	JoinedDate         time.Time       `gorm:"autoCreateTime" json:"joined_date"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Announcer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Affiliation is the managed lookup list announcer affiliations are drawn
// from. A custom affiliation typed in by an admin is persisted here so it can
// be reused.
type Affiliation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"size:50;not null;uniqueIndex:idx_affiliations_type_name" json:"type"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_affiliations_type_name" json:"name"`
	IsCustom  bool      `gorm:"default:false" json:"is_custom"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
