package repository

import (
	"context"
	"time"

	"github.com/campusgo/admin-backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostFilter struct {
	Status   string
	Category string
	UserID   *uuid.UUID
}

type PostRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	FindAll(ctx context.Context, filter PostFilter, offset, limit int) ([]*model.Post, int64, error)
	FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*model.Post, error)
	ExpirePosts(ctx context.Context, ids []uuid.UUID) error
	Remove(ctx context.Context, id uuid.UUID) (int64, error)
	CountUrgent(ctx context.Context, urgentThreshold int, activeSince time.Time) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindAll(ctx context.Context, filter PostFilter, offset, limit int) ([]*model.Post, int64, error) {
	var posts []*model.Post
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Post{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("post_date DESC").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *postRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.PostStatusActive).
		Order("post_date DESC").
		Find(&posts).Error
	return posts, err
}

// ExpirePosts flips active posts to expired. Removed posts are never touched.
func (r *postRepository) ExpirePosts(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Post{}).
		Where("id IN ? AND status = ?", ids, model.PostStatusActive).
		Update("status", model.PostStatusExpired).Error
}

// Remove soft-deletes a post and resolves its pending reports in one
// transaction. Returns the number of reports resolved.
func (r *postRepository) Remove(ctx context.Context, id uuid.UUID) (int64, error) {
	var resolved int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Post{}).
			Where("id = ?", id).
			Update("status", model.PostStatusRemoved).Error; err != nil {
			return err
		}

		res := tx.Model(&model.Report{}).
			Where("post_id = ? AND status = ?", id, model.ReportStatusPending).
			Update("status", model.ReportStatusResolved)
		if res.Error != nil {
			return res.Error
		}
		resolved = res.RowsAffected
		return nil
	})
	return resolved, err
}

// CountUrgent counts posts at or over the urgent threshold that are still
// inside their visibility window. Posts the sweep has not flipped yet are
// excluded by the activeSince predicate.
func (r *postRepository) CountUrgent(ctx context.Context, urgentThreshold int, activeSince time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("report_count >= ? AND post_date > ? AND status NOT IN ?", urgentThreshold, activeSince,
			[]model.PostStatus{model.PostStatusExpired, model.PostStatusRemoved}).
		Count(&count).Error
	return count, err
}
