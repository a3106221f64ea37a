package dto

type ReportThresholdsInput struct {
	Normal  *int `json:"normal" binding:"required"`
	Warning *int `json:"warning" binding:"required"`
	Urgent  *int `json:"urgent" binding:"required"`
}

// UpdateConfigInput is a full config payload plus the version the admin was
// editing. Pointer fields distinguish "not sent" from zero.
type UpdateConfigInput struct {
	PostVisibilityDuration      *int                   `json:"post_visibility_duration"`
	DailyFreePostLimit          *int                   `json:"daily_free_post_limit"`
	ReportThresholds            *ReportThresholdsInput `json:"report_thresholds"`
	BanThreshold                *int                   `json:"ban_threshold"`
	BanDurationDays             *int                   `json:"ban_duration_days"`
	EmojiPinPrice               *float64               `json:"emoji_pin_price"`
	DailyFreeCoin               *int                   `json:"daily_free_coin"`
	MaxActiveAnnouncements      *int                   `json:"max_active_announcements"`
	UrgentAnnouncementThreshold *int                   `json:"urgent_announcement_threshold"`
	Version                     int                    `json:"version" binding:"required,min=1"`
}
