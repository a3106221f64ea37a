package moderation

import (
	"time"

	"github.com/campusgo/admin-backend/internal/model"
)

// DerivePostStatus computes the effective post status at a point in time.
// Removed is terminal and always wins; an active post past its visibility
// window is expired even if the stored row has not been swept yet.
func DerivePostStatus(p *model.Post, visibilityHours int, now time.Time) model.PostStatus {
	if p.Status == model.PostStatusRemoved {
		return model.PostStatusRemoved
	}
	if now.Sub(p.PostDate) > time.Duration(visibilityHours)*time.Hour {
		return model.PostStatusExpired
	}
	return p.Status
}

// DeriveAnnouncementStatus computes the effective announcement status from
// its date window. Removed is terminal.
func DeriveAnnouncementStatus(a *model.Announcement, now time.Time) model.AnnouncementStatus {
	if a.Status == model.AnnouncementStatusRemoved || a.Status == model.AnnouncementStatusPending {
		return a.Status
	}
	switch {
	case now.Before(a.StartDate):
		return model.AnnouncementStatusScheduled
	case now.After(a.EndDate):
		return model.AnnouncementStatusExpired
	default:
		return model.AnnouncementStatusActive
	}
}

// IsUpcomingUrgent reports whether an announcement belongs in the urgent
// notification feed: still pending or scheduled, starting after now but
// within the configured window.
func IsUpcomingUrgent(a *model.Announcement, windowHours int, now time.Time) bool {
	if a.Status != model.AnnouncementStatusPending && a.Status != model.AnnouncementStatusScheduled {
		return false
	}
	if !a.StartDate.After(now) {
		return false
	}
	return !a.StartDate.After(now.Add(time.Duration(windowHours) * time.Hour))
}

// DeriveSpawnStatus computes the effective AR spawn status from its optional
// schedule. A stored inactive status (soft delete) always wins.
func DeriveSpawnStatus(s *model.ARSpawn, now time.Time) model.SpawnStatus {
	if s.Status == model.SpawnStatusInactive {
		return model.SpawnStatusInactive
	}
	if s.StartTime != nil && now.Before(*s.StartTime) {
		return model.SpawnStatusScheduled
	}
	if s.EndTime != nil && now.After(*s.EndTime) {
		return model.SpawnStatusInactive
	}
	return model.SpawnStatusActive
}
