package service

import (
	"context"
	"testing"
	"time"

	"github.com/campusgo/admin-backend/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBellFixture(t *testing.T, posts []*model.Post, announcements []*model.Announcement) NotificationService {
	t.Helper()

	def := model.DefaultAdminConfig()
	configSvc := NewConfigService(&fakeConfigRepo{cfg: &def}, nil)

	return NewNotificationService(
		&fakeNotificationRepo{},
		newFakePostRepo(posts...),
		newFakeAnnouncementRepo(announcements...),
		configSvc,
		nil,
	)
}

func TestUrgentCountCombinesPostsAndAnnouncements(t *testing.T) {
	now := time.Now()

	posts := []*model.Post{
		{ID: uuid.New(), Status: model.PostStatusActive, PostDate: now, ReportCount: 12},
		{ID: uuid.New(), Status: model.PostStatusActive, PostDate: now, ReportCount: 10},
		{ID: uuid.New(), Status: model.PostStatusActive, PostDate: now, ReportCount: 9},
		// Urgent count but terminal status, never counted.
		{ID: uuid.New(), Status: model.PostStatusRemoved, PostDate: now, ReportCount: 30},
	}

	announcements := []*model.Announcement{
		// Starts inside the default 48h window.
		{ID: uuid.New(), Status: model.AnnouncementStatusScheduled, StartDate: now.Add(12 * time.Hour), EndDate: now.Add(36 * time.Hour)},
		// Starts beyond the window.
		{ID: uuid.New(), Status: model.AnnouncementStatusScheduled, StartDate: now.Add(72 * time.Hour), EndDate: now.Add(96 * time.Hour)},
		// Already running, not upcoming.
		{ID: uuid.New(), Status: model.AnnouncementStatusActive, StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour)},
	}

	svc := newBellFixture(t, posts, announcements)

	count, err := svc.UrgentCount(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), count.UrgentPosts)
	assert.Equal(t, int64(1), count.UrgentAnnouncements)
	assert.Equal(t, int64(3), count.Total)
}

func TestUrgentCountSkipsPostsPastVisibilityWindow(t *testing.T) {
	now := time.Now()

	// Heavily reported but 100h old against the default 24h window: the
	// sweep has not flipped it yet, and the bell must not count it.
	posts := []*model.Post{
		{ID: uuid.New(), Status: model.PostStatusActive, PostDate: now.Add(-100 * time.Hour), ReportCount: 30},
		{ID: uuid.New(), Status: model.PostStatusActive, PostDate: now.Add(-time.Hour), ReportCount: 30},
	}

	svc := newBellFixture(t, posts, nil)

	count, err := svc.UrgentCount(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), count.UrgentPosts)
	assert.Equal(t, int64(1), count.Total)
}

func TestUrgentCountEmpty(t *testing.T) {
	svc := newBellFixture(t, nil, nil)

	count, err := svc.UrgentCount(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), count.Total)
}

func TestNotificationCRUD(t *testing.T) {
	repo := &fakeNotificationRepo{}
	def := model.DefaultAdminConfig()
	configSvc := NewConfigService(&fakeConfigRepo{cfg: &def}, nil)
	svc := NewNotificationService(repo, newFakePostRepo(), newFakeAnnouncementRepo(), configSvc, nil)

	userID := uuid.New()
	notification := &model.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		ActorID: uuid.New(),
		Type:    model.NotificationTypeWarning,
		Message: "You have received a warning.",
	}
	require.NoError(t, svc.CreateNotification(context.Background(), notification))

	unread, err := svc.UnreadCount(userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	require.NoError(t, svc.MarkAsRead(notification.ID))

	unread, err = svc.UnreadCount(userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}
