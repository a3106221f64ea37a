package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusWarning   UserStatus = "warning"
	UserStatusBanned    UserStatus = "banned"
	UserStatusSuspended UserStatus = "suspended"
)

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string     `gorm:"size:100;not null" json:"name"`
	Email        string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:255" json:"-"`
	Role         string     `gorm:"size:20;default:'student'" json:"role"`
	Faculty      string     `gorm:"size:100" json:"faculty"`
	Status       UserStatus `gorm:"size:20;default:'active'" json:"status"`
	WarningCount int        `gorm:"not null;default:0" json:"warning_count"`
	BannedUntil  *time.Time `json:"banned_until,omitempty"`
	JoinedAt     time.Time  `gorm:"autoCreateTime" json:"joined_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
