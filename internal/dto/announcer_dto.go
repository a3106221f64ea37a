package dto

type CreateAnnouncerInput struct {
	Name            string `form:"name" json:"name" binding:"required,min=2,max=100"`
	Email           string `form:"email" json:"email" binding:"required,email"`
	AffiliationType string `form:"affiliation_type" json:"affiliation_type" binding:"required,oneof=faculty department organization external"`
	AffiliationName string `form:"affiliation_name" json:"affiliation_name" binding:"required,min=2,max=100"`
}

type UpdateAnnouncerInput struct {
	Name            string `form:"name" json:"name" binding:"omitempty,min=2,max=100"`
	Email           string `form:"email" json:"email" binding:"omitempty,email"`
	AffiliationType string `form:"affiliation_type" json:"affiliation_type" binding:"omitempty,oneof=faculty department organization external"`
	AffiliationName string `form:"affiliation_name" json:"affiliation_name" binding:"omitempty,min=2,max=100"`
}

type AnnouncerFilterQuery struct {
	PaginationQuery
	Status string `form:"status" binding:"omitempty,oneof=active inactive"`
}
