package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationTypeWarning = "warning"
	NotificationTypeBan     = "ban"
	NotificationTypeUnban   = "unban"
	NotificationTypeSuspend = "suspend"
)

type Notification struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`  // recipient
	ActorID    uuid.UUID `gorm:"type:uuid;not null" json:"actor_id"`       // admin who triggered it
	EntityID   uuid.UUID `gorm:"type:uuid" json:"entity_id"`               // related post, if any
	EntityType string    `gorm:"size:50" json:"entity_type"`
	Type       string    `gorm:"size:50;not null" json:"type"`
	Message    string    `gorm:"type:text" json:"message"`
	IsRead     bool      `gorm:"default:false" json:"is_read"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
