package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/campusgo/admin-backend/internal/dto"
	"github.com/campusgo/admin-backend/internal/model"
	"github.com/campusgo/admin-backend/internal/moderation"
	"github.com/campusgo/admin-backend/internal/repository"
	"github.com/google/uuid"
)

type PostService interface {
	// ListPosts runs the auto-expiry sweep over the current page before
	// returning it: any active post past the visibility window is flipped
	// to expired.
	ListPosts(ctx context.Context, query dto.PostFilterQuery) ([]*dto.PostResponse, int64, error)
	GetPost(ctx context.Context, id uuid.UUID) (*dto.PostResponse, error)
	RemovePost(ctx context.Context, id uuid.UUID) (int64, error)
}

type postService struct {
	postRepo        repository.PostRepository
	configSvc       ConfigService
	searchSvc       SearchService
	notificationSvc NotificationService
}

func NewPostService(
	postRepo repository.PostRepository,
	configSvc ConfigService,
	searchSvc SearchService,
	notificationSvc NotificationService,
) PostService {
	return &postService{
		postRepo:        postRepo,
		configSvc:       configSvc,
		searchSvc:       searchSvc,
		notificationSvc: notificationSvc,
	}
}

func (s *postService) ListPosts(ctx context.Context, query dto.PostFilterQuery) ([]*dto.PostResponse, int64, error) {
	cfg, err := s.configSvc.Get(ctx)
	if err != nil {
		return nil, 0, err
	}

	filter := repository.PostFilter{
		Status:   query.Status,
		Category: query.Category,
	}
	if query.UserID != "" {
		uid, err := uuid.Parse(query.UserID)
		if err == nil {
			filter.UserID = &uid
		}
	}

	posts, total, err := s.postRepo.FindAll(ctx, filter, query.Offset(), query.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}

	now := time.Now()
	expired := s.sweep(ctx, posts, cfg.PostVisibilityDuration, now)
	if expired > 0 {
		s.notificationSvc.PublishBellEvent(ctx, "posts_expired")
	}

	responses := make([]*dto.PostResponse, 0, len(posts))
	for _, p := range posts {
		responses = append(responses, toPostResponse(p, cfg, now))
	}
	return responses, total, nil
}

// sweep is best effort: it runs only when an admin loads the table, and a
// failed flip just logs and leaves the post for the next load.
func (s *postService) sweep(ctx context.Context, posts []*model.Post, visibilityHours int, now time.Time) int {
	var (
		expiredIDs []uuid.UUID
		flipped    []*model.Post
	)
	for _, p := range posts {
		if p.Status != model.PostStatusActive {
			continue
		}
		if moderation.DerivePostStatus(p, visibilityHours, now) == model.PostStatusExpired {
			expiredIDs = append(expiredIDs, p.ID)
			p.Status = model.PostStatusExpired
			flipped = append(flipped, p)
		}
	}
	if len(expiredIDs) == 0 {
		return 0
	}

	if err := s.postRepo.ExpirePosts(ctx, expiredIDs); err != nil {
		log.Printf("auto-expiry sweep failed for %d posts: %v", len(expiredIDs), err)
		return 0
	}

	for _, p := range flipped {
		if err := s.searchSvc.IndexPost(p); err != nil {
			log.Printf("failed to reindex expired post %s: %v", p.ID, err)
		}
	}
	return len(expiredIDs)
}

func (s *postService) GetPost(ctx context.Context, id uuid.UUID) (*dto.PostResponse, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "post")
	}

	cfg, err := s.configSvc.Get(ctx)
	if err != nil {
		return nil, err
	}

	return toPostResponse(post, cfg, time.Now()), nil
}

// RemovePost soft-deletes the post and resolves its pending reports; removed
// is terminal, there is no restore. Returns the number of reports resolved.
func (s *postService) RemovePost(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, err := s.postRepo.FindByID(ctx, id); err != nil {
		return 0, wrapNotFound(err, "post")
	}

	resolved, err := s.postRepo.Remove(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to remove post: %w", err)
	}

	if err := s.searchSvc.DeletePost(id.String()); err != nil {
		log.Printf("failed to drop post %s from search index: %v", id, err)
	}
	s.notificationSvc.PublishBellEvent(ctx, "post_removed")

	return resolved, nil
}

func toPostResponse(p *model.Post, cfg *model.AdminConfig, now time.Time) *dto.PostResponse {
	return &dto.PostResponse{
		Post:            p,
		EffectiveStatus: moderation.DerivePostStatus(p, cfg.PostVisibilityDuration, now),
		Severity:        moderation.SeverityOf(p.ReportCount, cfg.ReportThresholds),
		IsUrgent:        moderation.IsUrgent(p.ReportCount, cfg.ReportThresholds),
	}
}
