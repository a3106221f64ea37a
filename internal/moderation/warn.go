package moderation

import (
	"time"

	"github.com/campusgo/admin-backend/internal/model"
)

// WarnOutcome is the status decision after a warning has been counted.
type WarnOutcome struct {
	Status      model.UserStatus
	BannedUntil *time.Time
}

// DecideStatusAfterWarn applies the ban-threshold rule to a freshly read
// warning count. An already banned user keeps their ban untouched.
func DecideStatusAfterWarn(u *model.User, banThreshold, banDurationDays int, now time.Time) WarnOutcome {
	if u.Status == model.UserStatusBanned {
		return WarnOutcome{Status: model.UserStatusBanned, BannedUntil: u.BannedUntil}
	}
	if u.WarningCount >= banThreshold {
		until := now.AddDate(0, 0, banDurationDays)
		return WarnOutcome{Status: model.UserStatusBanned, BannedUntil: &until}
	}
	if u.WarningCount > 0 {
		return WarnOutcome{Status: model.UserStatusWarning}
	}
	return WarnOutcome{Status: u.Status}
}
