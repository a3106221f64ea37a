package dto

import (
	"github.com/campusgo/admin-backend/internal/model"
	"github.com/campusgo/admin-backend/internal/moderation"
)

type ReportFilterQuery struct {
	PaginationQuery
	Status string `form:"status" binding:"omitempty,oneof=pending resolved dismissed"`
}

type ReportActionInput struct {
	AdminNote string `json:"admin_note" binding:"omitempty,max=1000"`
}

type ReportResponse struct {
	*model.Report
	PostSeverity moderation.Severity `json:"post_severity"`
}
