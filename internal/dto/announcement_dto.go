package dto

import (
	"io"
	"time"

	"github.com/campusgo/admin-backend/internal/model"
)

type CreateAnnouncementInput struct {
	Title       string    `form:"title" json:"title" binding:"required,min=3,max=200"`
	Body        string    `form:"body" json:"body" binding:"required"`
	Department  string    `form:"department" json:"department" binding:"omitempty,max=100"`
	StartDate   time.Time `form:"start_date" json:"start_date" binding:"required"`
	EndDate     time.Time `form:"end_date" json:"end_date" binding:"required,gtfield=StartDate"`
	AnnouncerID string    `form:"announcer_id" json:"announcer_id" binding:"omitempty,uuid"`
	IsUrgent    bool      `form:"is_urgent" json:"is_urgent"`
}

type UpdateAnnouncementInput struct {
	Title      string     `json:"title" binding:"omitempty,min=3,max=200"`
	Body       string     `json:"body"`
	Department string     `json:"department" binding:"omitempty,max=100"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	IsUrgent   *bool      `json:"is_urgent"`
	Status     string     `json:"status" binding:"omitempty,oneof=pending scheduled active"`
}

type AnnouncementFilterQuery struct {
	PaginationQuery
	Status     string `form:"status" binding:"omitempty,oneof=pending scheduled active expired removed"`
	Department string `form:"department"`
}

// PhotoFile is a photo upload parsed from a multipart form.
type PhotoFile struct {
	Reader   io.Reader
	FileName string
}

type AnnouncementResponse struct {
	*model.Announcement
	EffectiveStatus model.AnnouncementStatus `json:"effective_status"`
}
