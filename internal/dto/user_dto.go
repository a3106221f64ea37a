package dto

import "github.com/campusgo/admin-backend/internal/model"

type UserFilterQuery struct {
	PaginationQuery
	Status  string `form:"status" binding:"omitempty,oneof=active warning banned suspended"`
	Faculty string `form:"faculty"`
	Search  string `form:"search"`
}

type UpdateUserInput struct {
	Name    string `json:"name" binding:"omitempty,min=2,max=100"`
	Faculty string `json:"faculty" binding:"omitempty,max=100"`
}

type WarnUserInput struct {
	Note string `json:"note" binding:"omitempty,max=500"`
}

type BanUserInput struct {
	Banned bool `json:"banned"`
}

type SuspendUserInput struct {
	Suspended bool `json:"suspended"`
}

type WarnResponse struct {
	User            *model.User `json:"user"`
	Banned          bool        `json:"banned"`
	WarnedPosts     int         `json:"warned_posts"`
	ResolvedReports int64       `json:"resolved_reports"`
}
