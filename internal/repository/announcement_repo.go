package repository

import (
	"context"
	"time"

	"github.com/campusgo/admin-backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnnouncementFilter struct {
	Status     string
	Department string
}

type AnnouncementRepository interface {
	Create(ctx context.Context, a *model.Announcement) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error)
	FindAll(ctx context.Context, filter AnnouncementFilter, offset, limit int) ([]*model.Announcement, int64, error)
	FindUpcoming(ctx context.Context, until time.Time) ([]*model.Announcement, error)
	Update(ctx context.Context, a *model.Announcement) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	CountActive(ctx context.Context, now time.Time) (int64, error)
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

// Create inserts the announcement and bumps the announcer's counter in one
// transaction.
func (r *announcementRepository) Create(ctx context.Context, a *model.Announcement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		if a.AnnouncerID != nil {
			if err := tx.Model(&model.Announcer{}).
				Where("id = ?", *a.AnnouncerID).
				UpdateColumn("total_announcements", gorm.Expr("total_announcements + ?", 1)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *announcementRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error) {
	var a model.Announcement
	if err := r.db.WithContext(ctx).
		Preload("Announcer").
		Where("id = ?", id).
		First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *announcementRepository) FindAll(ctx context.Context, filter AnnouncementFilter, offset, limit int) ([]*model.Announcement, int64, error) {
	var announcements []*model.Announcement
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Announcement{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("start_date DESC").Offset(offset).Limit(limit).Find(&announcements).Error; err != nil {
		return nil, 0, err
	}

	return announcements, total, nil
}

// FindUpcoming returns pending/scheduled announcements starting before the
// given horizon. The urgency window itself is applied by the caller.
func (r *announcementRepository) FindUpcoming(ctx context.Context, until time.Time) ([]*model.Announcement, error) {
	var announcements []*model.Announcement
	err := r.db.WithContext(ctx).
		Where("status IN ? AND start_date <= ?",
			[]model.AnnouncementStatus{model.AnnouncementStatusPending, model.AnnouncementStatusScheduled},
			until).
		Order("start_date ASC").
		Find(&announcements).Error
	return announcements, err
}

func (r *announcementRepository) Update(ctx context.Context, a *model.Announcement) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *announcementRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Announcement{}).
		Where("id = ?", id).
		Update("status", model.AnnouncementStatusRemoved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *announcementRepository) CountActive(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Announcement{}).
		Where("status NOT IN ? AND start_date <= ? AND end_date >= ?",
			[]model.AnnouncementStatus{model.AnnouncementStatusRemoved, model.AnnouncementStatusPending},
			now, now).
		Count(&count).Error
	return count, err
}
