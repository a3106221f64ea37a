package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ModerationActionType string

const (
	ActionWarn    ModerationActionType = "warn"
	ActionBan     ModerationActionType = "ban"
	ActionUnban   ModerationActionType = "unban"
	ActionSuspend ModerationActionType = "suspend"
	ActionRestore ModerationActionType = "restore"
)

// ModerationAction is the operation log for moderation cascades. Each cascade
// writes one row inside the same transaction as its entity updates, so the
// log never records an action that did not fully apply.
type ModerationAction struct {
	ID              uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	AdminID         uuid.UUID            `gorm:"type:uuid;not null;index" json:"admin_id"`
	TargetUserID    uuid.UUID            `gorm:"type:uuid;not null;index" json:"target_user_id"`
	PostID          *uuid.UUID           `gorm:"type:uuid" json:"post_id,omitempty"`
	Action          ModerationActionType `gorm:"size:20;not null" json:"action"`
	ResolvedReports int                  `gorm:"not null;default:0" json:"resolved_reports"`
	Note            string               `gorm:"size:500" json:"note,omitempty"`
	CreatedAt       time.Time            `gorm:"autoCreateTime;index" json:"created_at"`
}

func (m *ModerationAction) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
