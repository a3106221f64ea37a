package dto

import (
	"github.com/campusgo/admin-backend/internal/model"
	"github.com/campusgo/admin-backend/internal/moderation"
)

type PostFilterQuery struct {
	PaginationQuery
	Status   string `form:"status" binding:"omitempty,oneof=active expired removed"`
	Category string `form:"category"`
	UserID   string `form:"user_id" binding:"omitempty,uuid"`
}

// PostResponse wraps a post with the moderation view of it: the effective
// (time-derived) status and the severity tier of its report count.
type PostResponse struct {
	*model.Post
	EffectiveStatus model.PostStatus    `json:"effective_status"`
	Severity        moderation.Severity `json:"severity"`
	IsUrgent        bool                `json:"is_urgent"`
}
