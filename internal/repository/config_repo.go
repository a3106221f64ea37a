package repository

import (
	"context"
	"errors"
	"time"

	"github.com/campusgo/admin-backend/internal/model"
	"github.com/campusgo/admin-backend/pkg/apperror"
	"gorm.io/gorm"
)

type ConfigRepository interface {
	Get(ctx context.Context) (*model.AdminConfig, error)
	Seed(ctx context.Context) error
	// UpdateVersioned persists the config only if the stored version still
	// matches expectedVersion; a mismatch returns apperror.ErrVersionConflict.
	UpdateVersioned(ctx context.Context, cfg *model.AdminConfig, expectedVersion int, updatedBy string) (*model.AdminConfig, error)
}

type configRepository struct {
	db *gorm.DB
}

func NewConfigRepository(db *gorm.DB) ConfigRepository {
	return &configRepository{db: db}
}

func (r *configRepository) Get(ctx context.Context) (*model.AdminConfig, error) {
	var cfg model.AdminConfig
	if err := r.db.WithContext(ctx).Where("id = ?", 1).First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *configRepository) Seed(ctx context.Context) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.AdminConfig{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	cfg := model.DefaultAdminConfig()
	return r.db.WithContext(ctx).Create(&cfg).Error
}

func (r *configRepository) UpdateVersioned(ctx context.Context, cfg *model.AdminConfig, expectedVersion int, updatedBy string) (*model.AdminConfig, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.AdminConfig{}).
			Where("id = ? AND version = ?", 1, expectedVersion).
			Updates(map[string]interface{}{
				"post_visibility_duration":      cfg.PostVisibilityDuration,
				"daily_free_post_limit":         cfg.DailyFreePostLimit,
				"report_threshold_normal":       cfg.ReportThresholds.Normal,
				"report_threshold_warning":      cfg.ReportThresholds.Warning,
				"report_threshold_urgent":       cfg.ReportThresholds.Urgent,
				"ban_threshold":                 cfg.BanThreshold,
				"ban_duration_days":             cfg.BanDurationDays,
				"emoji_pin_price":               cfg.EmojiPinPrice,
				"daily_free_coin":               cfg.DailyFreeCoin,
				"max_active_announcements":      cfg.MaxActiveAnnouncements,
				"urgent_announcement_threshold": cfg.UrgentAnnouncementThreshold,
				"version":                       expectedVersion + 1,
				"last_updated":                  time.Now(),
				"updated_by":                    updatedBy,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Either the row is missing or someone updated it first.
			var existing model.AdminConfig
			if err := tx.Where("id = ?", 1).First(&existing).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperror.ErrNotFound
				}
				return err
			}
			return apperror.ErrVersionConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.Get(ctx)
}
