package repository

import (
	"context"

	"github.com/campusgo/admin-backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SpawnFilter struct {
	Category string
	Rarity   string
	Status   string
}

type ARSpawnRepository interface {
	Create(ctx context.Context, spawn *model.ARSpawn) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ARSpawn, error)
	FindBySlug(ctx context.Context, slug string) (*model.ARSpawn, error)
	FindAll(ctx context.Context, filter SpawnFilter, offset, limit int) ([]*model.ARSpawn, int64, error)
	Update(ctx context.Context, spawn *model.ARSpawn) error
	SetStatus(ctx context.Context, id uuid.UUID, status model.SpawnStatus) error
}

type arSpawnRepository struct {
	db *gorm.DB
}

func NewARSpawnRepository(db *gorm.DB) ARSpawnRepository {
	return &arSpawnRepository{db: db}
}

func (r *arSpawnRepository) Create(ctx context.Context, spawn *model.ARSpawn) error {
	return r.db.WithContext(ctx).Create(spawn).Error
}

func (r *arSpawnRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ARSpawn, error) {
	var spawn model.ARSpawn
	if err := r.db.WithContext(ctx).
		Preload("Locations").
		Where("id = ?", id).
		First(&spawn).Error; err != nil {
		return nil, err
	}
	return &spawn, nil
}

func (r *arSpawnRepository) FindBySlug(ctx context.Context, slug string) (*model.ARSpawn, error) {
	var spawn model.ARSpawn
	if err := r.db.WithContext(ctx).
		Preload("Locations").
		Where("slug = ?", slug).
		First(&spawn).Error; err != nil {
		return nil, err
	}
	return &spawn, nil
}

func (r *arSpawnRepository) FindAll(ctx context.Context, filter SpawnFilter, offset, limit int) ([]*model.ARSpawn, int64, error) {
	var spawns []*model.ARSpawn
	var total int64

	query := r.db.WithContext(ctx).Model(&model.ARSpawn{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Rarity != "" {
		query = query.Where("rarity = ?", filter.Rarity)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Locations").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&spawns).Error; err != nil {
		return nil, 0, err
	}

	return spawns, total, nil
}

// Update replaces the spawn row and its location list.
func (r *arSpawnRepository) Update(ctx context.Context, spawn *model.ARSpawn) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("spawn_id = ?", spawn.ID).Delete(&model.SpawnLocation{}).Error; err != nil {
			return err
		}
		return tx.Save(spawn).Error
	})
}

func (r *arSpawnRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.SpawnStatus) error {
	res := r.db.WithContext(ctx).Model(&model.ARSpawn{}).
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
