package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/campusgo/admin-backend/internal/model"
	"github.com/campusgo/admin-backend/internal/moderation"
	"github.com/campusgo/admin-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// BellEventsChannel carries invalidation events for the admin notification
// bell; subscribers recompute the urgent count on every message.
const BellEventsChannel = "bell_events"

// BellCount is the urgent-count breakdown shown on the notification bell.
type BellCount struct {
	UrgentPosts         int64 `json:"urgent_posts"`
	UrgentAnnouncements int64 `json:"urgent_announcements"`
	Total               int64 `json:"total"`
}

type NotificationService interface {
	CreateNotification(ctx context.Context, notification *model.Notification) error
	GetNotifications(userID uuid.UUID, limit, offset int) ([]model.Notification, error)
	MarkAsRead(id uuid.UUID) error
	MarkAllAsRead(userID uuid.UUID) error
	UnreadCount(userID uuid.UUID) (int64, error)

	UrgentCount(ctx context.Context) (*BellCount, error)
	PublishBellEvent(ctx context.Context, reason string)
}

type notificationService struct {
	repo             repository.NotificationRepository
	postRepo         repository.PostRepository
	announcementRepo repository.AnnouncementRepository
	configSvc        ConfigService
	redisClient      *redis.Client
}

func NewNotificationService(
	repo repository.NotificationRepository,
	postRepo repository.PostRepository,
	announcementRepo repository.AnnouncementRepository,
	configSvc ConfigService,
	redisClient *redis.Client,
) NotificationService {
	return &notificationService{
		repo:             repo,
		postRepo:         postRepo,
		announcementRepo: announcementRepo,
		configSvc:        configSvc,
		redisClient:      redisClient,
	}
}

func (s *notificationService) CreateNotification(ctx context.Context, notification *model.Notification) error {
	// 1. Save to DB
	if err := s.repo.Create(notification); err != nil {
		return err
	}

	// 2. Publish to Redis if Redis is available
	if s.redisClient != nil {
		channel := fmt.Sprintf("user_notifications:%s", notification.UserID.String())

		payload, err := json.Marshal(notification)
		if err == nil {
			s.redisClient.Publish(ctx, channel, payload)
		}
	}

	return nil
}

func (s *notificationService) GetNotifications(userID uuid.UUID, limit, offset int) ([]model.Notification, error) {
	return s.repo.GetByUserID(userID, limit, offset)
}

func (s *notificationService) MarkAsRead(id uuid.UUID) error {
	return s.repo.MarkAsRead(id)
}

func (s *notificationService) MarkAllAsRead(userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(userID)
}

func (s *notificationService) UnreadCount(userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(userID)
}

// UrgentCount combines urgent, non-terminal posts with announcements whose
// start falls inside the configured urgency window. Read-only.
func (s *notificationService) UrgentCount(ctx context.Context) (*BellCount, error) {
	cfg, err := s.configSvc.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	activeSince := now.Add(-time.Duration(cfg.PostVisibilityDuration) * time.Hour)
	posts, err := s.postRepo.CountUrgent(ctx, cfg.ReportThresholds.Urgent, activeSince)
	if err != nil {
		return nil, fmt.Errorf("failed to count urgent posts: %w", err)
	}

	horizon := now.Add(time.Duration(cfg.UrgentAnnouncementThreshold) * time.Hour)
	upcoming, err := s.announcementRepo.FindUpcoming(ctx, horizon)
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming announcements: %w", err)
	}

	var announcements int64
	for _, a := range upcoming {
		if moderation.IsUpcomingUrgent(a, cfg.UrgentAnnouncementThreshold, now) {
			announcements++
		}
	}

	return &BellCount{
		UrgentPosts:         posts,
		UrgentAnnouncements: announcements,
		Total:               posts + announcements,
	}, nil
}

func (s *notificationService) PublishBellEvent(ctx context.Context, reason string) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Publish(ctx, BellEventsChannel, reason).Err(); err != nil {
		log.Printf("failed to publish bell event %q: %v", reason, err)
	}
}
