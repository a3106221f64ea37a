package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/campusgo/admin-backend/internal/dto"
	"github.com/campusgo/admin-backend/internal/model"
	"github.com/campusgo/admin-backend/internal/repository"
	"github.com/campusgo/admin-backend/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ModerationService orchestrates the warn/ban cascades. The decision rules
// live in internal/moderation; the multi-entity writes run inside one
// repository transaction so a cascade never half-applies.
type ModerationService interface {
	WarnUser(ctx context.Context, userID, adminID uuid.UUID, note string) (*dto.WarnResponse, error)
	WarnUserForPost(ctx context.Context, postID, adminID uuid.UUID, note string) (*dto.WarnResponse, error)
	WarnUserFromReport(ctx context.Context, reportID, adminID uuid.UUID, note string) (*dto.WarnResponse, error)
	SetUserBanned(ctx context.Context, userID, adminID uuid.UUID, banned bool) (*model.User, error)
	SetUserSuspended(ctx context.Context, userID, adminID uuid.UUID, suspended bool) (*model.User, error)
	RecentActions(ctx context.Context, limit int) ([]*model.ModerationAction, error)
}

type moderationService struct {
	moderationRepo  repository.ModerationRepository
	userRepo        repository.UserRepository
	postRepo        repository.PostRepository
	reportRepo      repository.ReportRepository
	configSvc       ConfigService
	notificationSvc NotificationService
}

func NewModerationService(
	moderationRepo repository.ModerationRepository,
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	reportRepo repository.ReportRepository,
	configSvc ConfigService,
	notificationSvc NotificationService,
) ModerationService {
	return &moderationService{
		moderationRepo:  moderationRepo,
		userRepo:        userRepo,
		postRepo:        postRepo,
		reportRepo:      reportRepo,
		configSvc:       configSvc,
		notificationSvc: notificationSvc,
	}
}

func (s *moderationService) WarnUser(ctx context.Context, userID, adminID uuid.UUID, note string) (*dto.WarnResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, wrapNotFound(err, "user")
	}
	return s.warn(ctx, userID, nil, adminID, note)
}

func (s *moderationService) WarnUserForPost(ctx context.Context, postID, adminID uuid.UUID, note string) (*dto.WarnResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, wrapNotFound(err, "post")
	}
	return s.warn(ctx, post.UserID, &post.ID, adminID, note)
}

func (s *moderationService) WarnUserFromReport(ctx context.Context, reportID, adminID uuid.UUID, note string) (*dto.WarnResponse, error) {
	report, err := s.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		return nil, wrapNotFound(err, "report")
	}
	// The triggering report shares the post, so the cascade resolves it
	// together with every other pending report on that post.
	return s.warn(ctx, report.ReportedID, &report.PostID, adminID, note)
}

func (s *moderationService) warn(ctx context.Context, userID uuid.UUID, postID *uuid.UUID, adminID uuid.UUID, note string) (*dto.WarnResponse, error) {
	cfg, err := s.configSvc.Get(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.moderationRepo.Warn(ctx, repository.WarnCascade{
		UserID:          userID,
		PostID:          postID,
		AdminID:         adminID,
		Note:            note,
		BanThreshold:    cfg.BanThreshold,
		BanDurationDays: cfg.BanDurationDays,
	})
	if err != nil {
		return nil, fmt.Errorf("warn cascade failed: %w", err)
	}

	// The warning notification is best effort; the cascade already
	// committed and is not rolled back over a notification failure.
	s.notifyWarned(ctx, result, adminID, postID)
	s.notificationSvc.PublishBellEvent(ctx, "user_warned")

	return &dto.WarnResponse{
		User:            result.User,
		Banned:          result.Banned,
		WarnedPosts:     len(result.WarnedPostIDs),
		ResolvedReports: result.ResolvedReports,
	}, nil
}

func (s *moderationService) notifyWarned(ctx context.Context, result *repository.WarnResult, adminID uuid.UUID, postID *uuid.UUID) {
	notifType := model.NotificationTypeWarning
	message := fmt.Sprintf("You have received a warning (%d total).", result.User.WarningCount)
	if result.Banned {
		notifType = model.NotificationTypeBan
		message = "Your account has been banned after repeated warnings."
	}

	notification := &model.Notification{
		UserID:  result.User.ID,
		ActorID: adminID,
		Type:    notifType,
		Message: message,
	}
	if postID != nil {
		notification.EntityID = *postID
		notification.EntityType = "post"
	}

	if err := s.notificationSvc.CreateNotification(ctx, notification); err != nil {
		log.Printf("failed to send warning notification to user %s: %v", result.User.ID, err)
	}
}

func (s *moderationService) SetUserBanned(ctx context.Context, userID, adminID uuid.UUID, banned bool) (*model.User, error) {
	cfg, err := s.configSvc.Get(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.moderationRepo.SetBanned(ctx, userID, adminID, banned, cfg.BanDurationDays)
	if err != nil {
		return nil, wrapNotFound(err, "user")
	}

	notifType := model.NotificationTypeUnban
	message := "Your account has been reinstated."
	if banned {
		notifType = model.NotificationTypeBan
		message = fmt.Sprintf("Your account has been banned for %d days.", cfg.BanDurationDays)
	}
	if err := s.notificationSvc.CreateNotification(ctx, &model.Notification{
		UserID:  userID,
		ActorID: adminID,
		Type:    notifType,
		Message: message,
	}); err != nil {
		log.Printf("failed to send ban notification to user %s: %v", userID, err)
	}

	return user, nil
}

func (s *moderationService) SetUserSuspended(ctx context.Context, userID, adminID uuid.UUID, suspended bool) (*model.User, error) {
	user, err := s.moderationRepo.SetSuspended(ctx, userID, adminID, suspended)
	if err != nil {
		return nil, wrapNotFound(err, "user")
	}
	return user, nil
}

func (s *moderationService) RecentActions(ctx context.Context, limit int) ([]*model.ModerationAction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.moderationRepo.RecentActions(ctx, limit)
}

func wrapNotFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", apperror.ErrNotFound, entity)
	}
	return err
}
