package model

import "time"

// ReportThresholds are the report-count boundaries for the three severity
// tiers. Ordering between them is an admin convention, not a stored
// constraint.
type ReportThresholds struct {
	Normal  int `gorm:"not null;default:2" json:"normal"`
	Warning int `gorm:"not null;default:5" json:"warning"`
	Urgent  int `gorm:"not null;default:10" json:"urgent"`
}

// AdminConfig is a single versioned row (id = 1). Version is bumped on every
// update and checked optimistically so concurrent edits fail instead of
// silently overwriting each other.
type AdminConfig struct {
	ID                          uint             `gorm:"primaryKey" json:"-"`
	PostVisibilityDuration      int              `gorm:"not null;default:24" json:"post_visibility_duration"` // hours
	DailyFreePostLimit          int              `gorm:"not null;default:3" json:"daily_free_post_limit"`
	ReportThresholds            ReportThresholds `gorm:"embedded;embeddedPrefix:report_threshold_" json:"report_thresholds"`
	BanThreshold                int              `gorm:"not null;default:5" json:"ban_threshold"`
	BanDurationDays             int              `gorm:"not null;default:30" json:"ban_duration_days"`
	EmojiPinPrice               float64          `gorm:"not null;default:2.5" json:"emoji_pin_price"`
	DailyFreeCoin               int              `gorm:"not null;default:10" json:"daily_free_coin"`
	MaxActiveAnnouncements      int              `gorm:"not null;default:10" json:"max_active_announcements"`
	UrgentAnnouncementThreshold int              `gorm:"not null;default:48" json:"urgent_announcement_threshold"` // hours
	Version                     int              `gorm:"not null;default:1" json:"version"`
	LastUpdated                 time.Time        `gorm:"autoUpdateTime" json:"last_updated"`
	UpdatedBy                   string           `gorm:"size:100" json:"updated_by"`
}

// DefaultAdminConfig is what Get falls back to (and what gets seeded) when no
// configuration row exists yet.
func DefaultAdminConfig() AdminConfig {
	return AdminConfig{
		ID:                     1,
		PostVisibilityDuration: 24,
		DailyFreePostLimit:     3,
		ReportThresholds: ReportThresholds{
			Normal:  2,
			Warning: 5,
			Urgent:  10,
		},
		BanThreshold:                5,
		BanDurationDays:             30,
		EmojiPinPrice:               2.5,
		DailyFreeCoin:               10,
		MaxActiveAnnouncements:      10,
		UrgentAnnouncementThreshold: 48,
		Version:                     1,
	}
}
