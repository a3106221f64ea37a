package repository

import (
	"context"

	"github.com/campusgo/admin-backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnnouncerRepository interface {
	Create(ctx context.Context, a *model.Announcer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Announcer, error)
	FindByEmail(ctx context.Context, email string) (*model.Announcer, error)
	FindAll(ctx context.Context, status string, offset, limit int) ([]*model.Announcer, int64, error)
	Update(ctx context.Context, a *model.Announcer) error
	SetStatus(ctx context.Context, id uuid.UUID, status model.AnnouncerStatus) error

	FindAffiliations(ctx context.Context, affiliationType string) ([]*model.Affiliation, error)
	FindOrCreateAffiliation(ctx context.Context, affiliationType, name string) (*model.Affiliation, error)
}

type announcerRepository struct {
	db *gorm.DB
}

func NewAnnouncerRepository(db *gorm.DB) AnnouncerRepository {
	return &announcerRepository{db: db}
}

func (r *announcerRepository) Create(ctx context.Context, a *model.Announcer) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *announcerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Announcer, error) {
	var a model.Announcer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *announcerRepository) FindByEmail(ctx context.Context, email string) (*model.Announcer, error) {
	var a model.Announcer
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *announcerRepository) FindAll(ctx context.Context, status string, offset, limit int) ([]*model.Announcer, int64, error) {
	var announcers []*model.Announcer
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Announcer{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("joined_date DESC").Offset(offset).Limit(limit).Find(&announcers).Error; err != nil {
		return nil, 0, err
	}

	return announcers, total, nil
}

func (r *announcerRepository) Update(ctx context.Context, a *model.Announcer) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *announcerRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.AnnouncerStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Announcer{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *announcerRepository) FindAffiliations(ctx context.Context, affiliationType string) ([]*model.Affiliation, error) {
	var affiliations []*model.Affiliation
	query := r.db.WithContext(ctx).Order("name ASC")
	if affiliationType != "" {
		query = query.Where("type = ?", affiliationType)
	}
	err := query.Find(&affiliations).Error
	return affiliations, err
}

// FindOrCreateAffiliation persists a custom affiliation name as a new lookup
// entry on first use.
func (r *announcerRepository) FindOrCreateAffiliation(ctx context.Context, affiliationType, name string) (*model.Affiliation, error) {
	var affiliation model.Affiliation
	err := r.db.WithContext(ctx).
		Where(model.Affiliation{Type: affiliationType, Name: name}).
		Attrs(model.Affiliation{IsCustom: true}).
		FirstOrCreate(&affiliation).Error
	if err != nil {
		return nil, err
	}
	return &affiliation, nil
}
