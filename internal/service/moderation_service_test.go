package service

import (
	"context"
	"testing"
	"time"

	"github.com/campusgo/admin-backend/internal/model"
	"github.com/campusgo/admin-backend/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type moderationFixture struct {
	users    *fakeUserRepo
	posts    *fakePostRepo
	reports  *fakeReportRepo
	modRepo  *fakeModerationRepo
	notifSvc *fakeNotificationSvc
	svc      ModerationService
}

func newModerationFixture(t *testing.T, users []*model.User, posts []*model.Post, reports []*model.Report) *moderationFixture {
	t.Helper()

	userRepo := newFakeUserRepo(users...)
	postRepo := newFakePostRepo(posts...)
	reportRepo := newFakeReportRepo(reports...)
	modRepo := &fakeModerationRepo{users: userRepo, posts: postRepo, reports: reportRepo}
	notifSvc := &fakeNotificationSvc{}

	def := model.DefaultAdminConfig()
	configSvc := NewConfigService(&fakeConfigRepo{cfg: &def}, nil)

	return &moderationFixture{
		users:    userRepo,
		posts:    postRepo,
		reports:  reportRepo,
		modRepo:  modRepo,
		notifSvc: notifSvc,
		svc:      NewModerationService(modRepo, userRepo, postRepo, reportRepo, configSvc, notifSvc),
	}
}

func TestWarnUserMarksActivePostsAndResolvesReports(t *testing.T) {
	userID := uuid.New()
	adminID := uuid.New()
	postA := &model.Post{ID: uuid.New(), UserID: userID, Status: model.PostStatusActive}
	postB := &model.Post{ID: uuid.New(), UserID: userID, Status: model.PostStatusActive}
	expired := &model.Post{ID: uuid.New(), UserID: userID, Status: model.PostStatusExpired}

	reports := []*model.Report{
		{ID: uuid.New(), PostID: postA.ID, ReportedID: userID, Status: model.ReportStatusPending},
		{ID: uuid.New(), PostID: postA.ID, ReportedID: userID, Status: model.ReportStatusPending},
		{ID: uuid.New(), PostID: postB.ID, ReportedID: userID, Status: model.ReportStatusPending},
		{ID: uuid.New(), PostID: postB.ID, ReportedID: userID, Status: model.ReportStatusResolved},
		{ID: uuid.New(), PostID: expired.ID, ReportedID: userID, Status: model.ReportStatusPending},
	}

	f := newModerationFixture(t,
		[]*model.User{{ID: userID, Status: model.UserStatusActive}},
		[]*model.Post{postA, postB, expired},
		reports,
	)

	res, err := f.svc.WarnUser(context.Background(), userID, adminID, "spamming")
	require.NoError(t, err)

	assert.Equal(t, 1, res.User.WarningCount)
	assert.Equal(t, model.UserStatusWarning, res.User.Status)
	assert.False(t, res.Banned)

	// Only the two active posts are flagged; their three pending reports
	// resolve together. The expired post's report is untouched.
	assert.Equal(t, 2, res.WarnedPosts)
	assert.Equal(t, int64(3), res.ResolvedReports)
	assert.True(t, f.posts.posts[postA.ID].IsWarned)
	assert.True(t, f.posts.posts[postB.ID].IsWarned)
	assert.False(t, f.posts.posts[expired.ID].IsWarned)

	// The user is notified and the bell invalidated.
	require.Len(t, f.notifSvc.created, 1)
	assert.Equal(t, model.NotificationTypeWarning, f.notifSvc.created[0].Type)
	assert.Contains(t, f.notifSvc.bellEvents, "user_warned")

	// The cascade logged exactly one action.
	require.Len(t, f.modRepo.actions, 1)
	assert.Equal(t, model.ActionWarn, f.modRepo.actions[0].Action)
	assert.Equal(t, 3, f.modRepo.actions[0].ResolvedReports)
}

func TestWarnUserBansAtThreshold(t *testing.T) {
	userID := uuid.New()
	adminID := uuid.New()

	// Default config bans at 5 warnings for 30 days; this warn is the fifth.
	f := newModerationFixture(t,
		[]*model.User{{ID: userID, Status: model.UserStatusWarning, WarningCount: 4}},
		nil, nil,
	)

	res, err := f.svc.WarnUser(context.Background(), userID, adminID, "")
	require.NoError(t, err)

	assert.True(t, res.Banned)
	assert.Equal(t, model.UserStatusBanned, res.User.Status)
	require.NotNil(t, res.User.BannedUntil)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), *res.User.BannedUntil, time.Minute)

	require.Len(t, f.notifSvc.created, 1)
	assert.Equal(t, model.NotificationTypeBan, f.notifSvc.created[0].Type)

	require.Len(t, f.modRepo.actions, 1)
	assert.Equal(t, model.ActionBan, f.modRepo.actions[0].Action)
}

func TestWarnUserForPostRemovesThatPostOnly(t *testing.T) {
	userID := uuid.New()
	adminID := uuid.New()
	target := &model.Post{ID: uuid.New(), UserID: userID, Status: model.PostStatusActive}
	other := &model.Post{ID: uuid.New(), UserID: userID, Status: model.PostStatusActive}

	f := newModerationFixture(t,
		[]*model.User{{ID: userID, Status: model.UserStatusActive}},
		[]*model.Post{target, other},
		[]*model.Report{
			{ID: uuid.New(), PostID: target.ID, ReportedID: userID, Status: model.ReportStatusPending},
			{ID: uuid.New(), PostID: other.ID, ReportedID: userID, Status: model.ReportStatusPending},
		},
	)

	res, err := f.svc.WarnUserForPost(context.Background(), target.ID, adminID, "offensive content")
	require.NoError(t, err)

	assert.Equal(t, 1, res.WarnedPosts)
	assert.Equal(t, int64(1), res.ResolvedReports)
	assert.Equal(t, model.PostStatusRemoved, f.posts.posts[target.ID].Status)
	assert.Equal(t, model.PostStatusActive, f.posts.posts[other.ID].Status)
}

func TestWarnUserFromReportResolvesSiblingsOnSamePost(t *testing.T) {
	userID := uuid.New()
	adminID := uuid.New()
	post := &model.Post{ID: uuid.New(), UserID: userID, Status: model.PostStatusActive}

	trigger := &model.Report{ID: uuid.New(), PostID: post.ID, ReportedID: userID, Status: model.ReportStatusPending}
	sibling := &model.Report{ID: uuid.New(), PostID: post.ID, ReportedID: userID, Status: model.ReportStatusPending}

	f := newModerationFixture(t,
		[]*model.User{{ID: userID, Status: model.UserStatusActive}},
		[]*model.Post{post},
		[]*model.Report{trigger, sibling},
	)

	res, err := f.svc.WarnUserFromReport(context.Background(), trigger.ID, adminID, "")
	require.NoError(t, err)

	assert.Equal(t, int64(2), res.ResolvedReports)
	assert.Equal(t, model.ReportStatusResolved, f.reports.reports[trigger.ID].Status)
	assert.Equal(t, model.ReportStatusResolved, f.reports.reports[sibling.ID].Status)
}

func TestWarnUserNotFound(t *testing.T) {
	f := newModerationFixture(t, nil, nil, nil)

	_, err := f.svc.WarnUser(context.Background(), uuid.New(), uuid.New(), "")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestSetUserBanned(t *testing.T) {
	userID := uuid.New()
	adminID := uuid.New()
	f := newModerationFixture(t,
		[]*model.User{{ID: userID, Status: model.UserStatusActive}},
		nil, nil,
	)

	user, err := f.svc.SetUserBanned(context.Background(), userID, adminID, true)
	require.NoError(t, err)
	assert.Equal(t, model.UserStatusBanned, user.Status)
	require.NotNil(t, user.BannedUntil)

	require.Len(t, f.notifSvc.created, 1)
	assert.Equal(t, model.NotificationTypeBan, f.notifSvc.created[0].Type)

	user, err = f.svc.SetUserBanned(context.Background(), userID, adminID, false)
	require.NoError(t, err)
	assert.Equal(t, model.UserStatusActive, user.Status)
	assert.Nil(t, user.BannedUntil)

	require.Len(t, f.notifSvc.created, 2)
	assert.Equal(t, model.NotificationTypeUnban, f.notifSvc.created[1].Type)
}

func TestSetUserSuspended(t *testing.T) {
	userID := uuid.New()
	f := newModerationFixture(t,
		[]*model.User{{ID: userID, Status: model.UserStatusActive}},
		nil, nil,
	)

	user, err := f.svc.SetUserSuspended(context.Background(), userID, uuid.New(), true)
	require.NoError(t, err)
	assert.Equal(t, model.UserStatusSuspended, user.Status)
}
