package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

type Report struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	ReporterID   uuid.UUID    `gorm:"type:uuid;not null;index" json:"reporter_id"`
	ReporterName string       `gorm:"size:100" json:"reporter_name"`
	ReportedID   uuid.UUID    `gorm:"type:uuid;not null;index" json:"reported_id"`
	ReportedName string       `gorm:"size:100" json:"reported_name"`
	PostID       uuid.UUID    `gorm:"type:uuid;not null;index" json:"post_id"`
	Post         *Post        `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Category     string       `gorm:"size:50;not null" json:"category"`
	Description  string       `gorm:"type:text" json:"description"`
	Status       ReportStatus `gorm:"size:20;default:'pending';index" json:"status"`
	AdminNote    string       `gorm:"size:1000" json:"admin_note,omitempty"`
	ReportDate   time.Time    `gorm:"autoCreateTime;index" json:"report_date"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
