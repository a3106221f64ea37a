package repository

import (
	"context"
	"time"

	"github.com/campusgo/admin-backend/internal/model"
	"github.com/campusgo/admin-backend/internal/moderation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WarnCascade carries one warn action plus the thresholds in force when the
// admin triggered it. Thresholds travel with the call instead of being read
// inside the transaction so the rule evaluation stays explicit.
type WarnCascade struct {
	UserID          uuid.UUID
	PostID          *uuid.UUID // set when the warn was triggered from a specific post
	AdminID         uuid.UUID
	Note            string
	BanThreshold    int
	BanDurationDays int
}

type WarnResult struct {
	User            *model.User
	Banned          bool
	WarnedPostIDs   []uuid.UUID
	ResolvedReports int64
}

type ModerationRepository interface {
	// Warn runs the full warn cascade in one transaction: count the
	// warning, re-evaluate the user's status, mark the affected posts and
	// resolve their pending reports, and record the action.
	Warn(ctx context.Context, cascade WarnCascade) (*WarnResult, error)
	SetBanned(ctx context.Context, userID, adminID uuid.UUID, banned bool, banDurationDays int) (*model.User, error)
	SetSuspended(ctx context.Context, userID, adminID uuid.UUID, suspended bool) (*model.User, error)
	RecentActions(ctx context.Context, limit int) ([]*model.ModerationAction, error)
}

type moderationRepository struct {
	db *gorm.DB
}

func NewModerationRepository(db *gorm.DB) ModerationRepository {
	return &moderationRepository{db: db}
}

func (r *moderationRepository) Warn(ctx context.Context, cascade WarnCascade) (*WarnResult, error) {
	result := &WarnResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).
			Where("id = ?", cascade.UserID).
			UpdateColumn("warning_count", gorm.Expr("warning_count + ?", 1)).Error; err != nil {
			return err
		}

		// Re-read the fresh count before deciding the status.
		var user model.User
		if err := tx.Where("id = ?", cascade.UserID).First(&user).Error; err != nil {
			return err
		}

		outcome := moderation.DecideStatusAfterWarn(&user, cascade.BanThreshold, cascade.BanDurationDays, time.Now())
		if outcome.Status != user.Status || outcome.BannedUntil != user.BannedUntil {
			if err := tx.Model(&model.User{}).
				Where("id = ?", user.ID).
				Updates(map[string]interface{}{
					"status":       outcome.Status,
					"banned_until": outcome.BannedUntil,
				}).Error; err != nil {
				return err
			}
			user.Status = outcome.Status
			user.BannedUntil = outcome.BannedUntil
		}

		if cascade.PostID != nil {
			// Warn from a post: that post is removed outright.
			if err := tx.Model(&model.Post{}).
				Where("id = ?", *cascade.PostID).
				Updates(map[string]interface{}{
					"is_warned": true,
					"status":    model.PostStatusRemoved,
				}).Error; err != nil {
				return err
			}
			result.WarnedPostIDs = []uuid.UUID{*cascade.PostID}
		} else {
			// Warn from the user context: every active post is marked
			// warned but stays visible.
			var posts []model.Post
			if err := tx.Select("id").
				Where("user_id = ? AND status = ?", cascade.UserID, model.PostStatusActive).
				Find(&posts).Error; err != nil {
				return err
			}
			for _, p := range posts {
				result.WarnedPostIDs = append(result.WarnedPostIDs, p.ID)
			}
			if len(result.WarnedPostIDs) > 0 {
				if err := tx.Model(&model.Post{}).
					Where("id IN ?", result.WarnedPostIDs).
					Update("is_warned", true).Error; err != nil {
					return err
				}
			}
		}

		if len(result.WarnedPostIDs) > 0 {
			res := tx.Model(&model.Report{}).
				Where("post_id IN ? AND status = ?", result.WarnedPostIDs, model.ReportStatusPending).
				Update("status", model.ReportStatusResolved)
			if res.Error != nil {
				return res.Error
			}
			result.ResolvedReports = res.RowsAffected
		}

		action := model.ModerationAction{
			AdminID:         cascade.AdminID,
			TargetUserID:    cascade.UserID,
			PostID:          cascade.PostID,
			Action:          model.ActionWarn,
			ResolvedReports: int(result.ResolvedReports),
			Note:            cascade.Note,
		}
		if user.Status == model.UserStatusBanned {
			action.Action = model.ActionBan
			result.Banned = true
		}
		if err := tx.Create(&action).Error; err != nil {
			return err
		}

		result.User = &user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *moderationRepository) SetBanned(ctx context.Context, userID, adminID uuid.UUID, banned bool, banDurationDays int) (*model.User, error) {
	var user model.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}

		actionType := model.ActionUnban
		var bannedUntil *time.Time
		status := model.UserStatusActive
		if banned {
			actionType = model.ActionBan
			status = model.UserStatusBanned
			until := time.Now().AddDate(0, 0, banDurationDays)
			bannedUntil = &until
		}

		if err := tx.Model(&model.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"status":       status,
				"banned_until": bannedUntil,
			}).Error; err != nil {
			return err
		}
		user.Status = status
		user.BannedUntil = bannedUntil

		action := model.ModerationAction{
			AdminID:      adminID,
			TargetUserID: userID,
			Action:       actionType,
		}
		return tx.Create(&action).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *moderationRepository) SetSuspended(ctx context.Context, userID, adminID uuid.UUID, suspended bool) (*model.User, error) {
	var user model.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}

		actionType := model.ActionRestore
		status := model.UserStatusActive
		if suspended {
			actionType = model.ActionSuspend
			status = model.UserStatusSuspended
		}

		if err := tx.Model(&model.User{}).
			Where("id = ?", userID).
			Update("status", status).Error; err != nil {
			return err
		}
		user.Status = status

		action := model.ModerationAction{
			AdminID:      adminID,
			TargetUserID: userID,
			Action:       actionType,
		}
		return tx.Create(&action).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *moderationRepository) RecentActions(ctx context.Context, limit int) ([]*model.ModerationAction, error) {
	var actions []*model.ModerationAction
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&actions).Error
	return actions, err
}
