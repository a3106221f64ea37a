package service

import (
	"context"
	"testing"
	"time"

	"github.com/campusgo/admin-backend/internal/dto"
	"github.com/campusgo/admin-backend/internal/model"
	"github.com/campusgo/admin-backend/internal/moderation"
	"github.com/campusgo/admin-backend/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postFixture struct {
	posts     *fakePostRepo
	searchSvc *fakeSearchSvc
	notifSvc  *fakeNotificationSvc
	svc       PostService
}

func newPostFixture(t *testing.T, posts ...*model.Post) *postFixture {
	t.Helper()

	postRepo := newFakePostRepo(posts...)
	searchSvc := &fakeSearchSvc{}
	notifSvc := &fakeNotificationSvc{}

	def := model.DefaultAdminConfig()
	configSvc := NewConfigService(&fakeConfigRepo{cfg: &def}, nil)

	return &postFixture{
		posts:     postRepo,
		searchSvc: searchSvc,
		notifSvc:  notifSvc,
		svc:       NewPostService(postRepo, configSvc, searchSvc, notifSvc),
	}
}

func TestListPostsSweepsExpired(t *testing.T) {
	now := time.Now()
	fresh := &model.Post{ID: uuid.New(), Status: model.PostStatusActive, PostDate: now.Add(-23 * time.Hour)}
	stale := &model.Post{ID: uuid.New(), Status: model.PostStatusActive, PostDate: now.Add(-25 * time.Hour)}
	removed := &model.Post{ID: uuid.New(), Status: model.PostStatusRemoved, PostDate: now.Add(-48 * time.Hour)}

	f := newPostFixture(t, fresh, stale, removed)

	responses, total, err := f.svc.ListPosts(context.Background(), dto.PostFilterQuery{
		PaginationQuery: dto.PaginationQuery{Page: 1, Limit: 20},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	byID := make(map[uuid.UUID]*dto.PostResponse)
	for _, r := range responses {
		byID[r.Post.ID] = r
	}

	assert.Equal(t, model.PostStatusActive, byID[fresh.ID].EffectiveStatus)
	assert.Equal(t, model.PostStatusExpired, byID[stale.ID].EffectiveStatus)
	assert.Equal(t, model.PostStatusRemoved, byID[removed.ID].EffectiveStatus)

	// Only the stale active post was flipped in storage and reindexed.
	require.Len(t, f.posts.expireCalls, 1)
	assert.Equal(t, []uuid.UUID{stale.ID}, f.posts.expireCalls[0])
	assert.Equal(t, model.PostStatusExpired, f.posts.posts[stale.ID].Status)
	assert.Equal(t, []string{stale.ID.String()}, f.searchSvc.indexedPosts)
	assert.Contains(t, f.notifSvc.bellEvents, "posts_expired")
}

func TestListPostsNoSweepWhenAllFresh(t *testing.T) {
	f := newPostFixture(t, &model.Post{
		ID:       uuid.New(),
		Status:   model.PostStatusActive,
		PostDate: time.Now().Add(-time.Hour),
	})

	_, _, err := f.svc.ListPosts(context.Background(), dto.PostFilterQuery{
		PaginationQuery: dto.PaginationQuery{Page: 1, Limit: 20},
	})
	require.NoError(t, err)

	assert.Empty(t, f.posts.expireCalls)
	assert.Empty(t, f.notifSvc.bellEvents)
}

func TestListPostsSeverity(t *testing.T) {
	now := time.Now()
	urgent := &model.Post{ID: uuid.New(), Status: model.PostStatusActive, PostDate: now, ReportCount: 10}
	warning := &model.Post{ID: uuid.New(), Status: model.PostStatusActive, PostDate: now, ReportCount: 5}
	normal := &model.Post{ID: uuid.New(), Status: model.PostStatusActive, PostDate: now, ReportCount: 1}

	f := newPostFixture(t, urgent, warning, normal)

	responses, _, err := f.svc.ListPosts(context.Background(), dto.PostFilterQuery{
		PaginationQuery: dto.PaginationQuery{Page: 1, Limit: 20},
	})
	require.NoError(t, err)

	byID := make(map[uuid.UUID]*dto.PostResponse)
	for _, r := range responses {
		byID[r.Post.ID] = r
	}

	assert.Equal(t, moderation.SeverityUrgent, byID[urgent.ID].Severity)
	assert.True(t, byID[urgent.ID].IsUrgent)
	assert.Equal(t, moderation.SeverityWarning, byID[warning.ID].Severity)
	assert.Equal(t, moderation.SeverityNormal, byID[normal.ID].Severity)
}

func TestRemovePost(t *testing.T) {
	post := &model.Post{ID: uuid.New(), Status: model.PostStatusActive, PostDate: time.Now()}
	f := newPostFixture(t, post)

	_, err := f.svc.RemovePost(context.Background(), post.ID)
	require.NoError(t, err)

	assert.Equal(t, model.PostStatusRemoved, f.posts.posts[post.ID].Status)
	assert.Equal(t, []string{post.ID.String()}, f.searchSvc.deletedPosts)
	assert.Contains(t, f.notifSvc.bellEvents, "post_removed")
}

func TestRemovePostNotFound(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.RemovePost(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
