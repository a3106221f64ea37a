package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostStatus string

const (
	PostStatusActive  PostStatus = "active"
	PostStatusExpired PostStatus = "expired"
	PostStatusRemoved PostStatus = "removed" // terminal
)

type Post struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	UserName    string     `gorm:"size:100" json:"user_name"`
	User        *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PostDate    time.Time  `gorm:"not null;index" json:"post_date"`
	Category    string     `gorm:"size:50;index" json:"category"`
	Location    string     `gorm:"size:100" json:"location"`
	Likes       int        `gorm:"not null;default:0" json:"likes"`
	Dislikes    int        `gorm:"not null;default:0" json:"dislikes"`
	ReportCount int        `gorm:"not null;default:0" json:"report_count"`
	Status      PostStatus `gorm:"size:20;default:'active';index" json:"status"`
	IsWarned    bool       `gorm:"default:false" json:"is_warned"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	if p.PostDate.IsZero() {
		p.PostDate = time.Now()
	}
	return
}
