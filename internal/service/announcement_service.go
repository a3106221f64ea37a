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
	"github.com/campusgo/admin-backend/pkg/apperror"
	"github.com/campusgo/admin-backend/pkg/storage"
	"github.com/google/uuid"
)

type AnnouncementService interface {
	CreateAnnouncement(ctx context.Context, input dto.CreateAnnouncementInput, createdBy uuid.UUID, photos []*dto.PhotoFile) (*dto.AnnouncementResponse, error)
	GetAnnouncement(ctx context.Context, id uuid.UUID) (*dto.AnnouncementResponse, error)
	ListAnnouncements(ctx context.Context, query dto.AnnouncementFilterQuery) ([]*dto.AnnouncementResponse, int64, error)
	UpdateAnnouncement(ctx context.Context, id uuid.UUID, input dto.UpdateAnnouncementInput) (*dto.AnnouncementResponse, error)
	DeleteAnnouncement(ctx context.Context, id uuid.UUID) error
	UpcomingUrgent(ctx context.Context) ([]*dto.AnnouncementResponse, error)
}

type announcementService struct {
	repo            repository.AnnouncementRepository
	announcerRepo   repository.AnnouncerRepository
	configSvc       ConfigService
	imageStorage    storage.ImageStorage
	searchSvc       SearchService
	notificationSvc NotificationService
}

func NewAnnouncementService(
	repo repository.AnnouncementRepository,
	announcerRepo repository.AnnouncerRepository,
	configSvc ConfigService,
	imageStorage storage.ImageStorage,
	searchSvc SearchService,
	notificationSvc NotificationService,
) AnnouncementService {
	return &announcementService{
		repo:            repo,
		announcerRepo:   announcerRepo,
		configSvc:       configSvc,
		imageStorage:    imageStorage,
		searchSvc:       searchSvc,
		notificationSvc: notificationSvc,
	}
}

func (s *announcementService) CreateAnnouncement(ctx context.Context, input dto.CreateAnnouncementInput, createdBy uuid.UUID, photos []*dto.PhotoFile) (*dto.AnnouncementResponse, error) {
	cfg, err := s.configSvc.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	active, err := s.repo.CountActive(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to count active announcements: %w", err)
	}
	if active >= int64(cfg.MaxActiveAnnouncements) {
		return nil, fmt.Errorf("%w: active announcement limit (%d) reached",
			apperror.ErrBadRequest, cfg.MaxActiveAnnouncements)
	}

	announcement := &model.Announcement{
		Title:        input.Title,
		Body:         input.Body,
		Department:   input.Department,
		Status:       model.AnnouncementStatusScheduled,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		CreatedByUID: createdBy,
		IsUrgent:     input.IsUrgent,
	}
	if !input.StartDate.After(now) {
		announcement.Status = model.AnnouncementStatusActive
	}

	if input.AnnouncerID != "" {
		announcerID, err := uuid.Parse(input.AnnouncerID)
		if err != nil {
			return nil, fmt.Errorf("%w: announcer_id", apperror.ErrInvalidInput)
		}
		if _, err := s.announcerRepo.FindByID(ctx, announcerID); err != nil {
			return nil, wrapNotFound(err, "announcer")
		}
		announcement.AnnouncerID = &announcerID
	}

	if err := s.repo.Create(ctx, announcement); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	// Photos go up after the row exists so their paths can be namespaced by
	// announcement id.
	folder := fmt.Sprintf("announcements/%s", announcement.ID)
	for _, photo := range photos {
		if photo == nil || photo.Reader == nil || s.imageStorage == nil {
			continue
		}
		url, err := s.imageStorage.UploadImage(ctx, photo.Reader, folder, photo.FileName)
		if err != nil {
			return nil, fmt.Errorf("failed to upload announcement photo: %w", err)
		}
		announcement.PhotoPaths = append(announcement.PhotoPaths, url)
	}
	if len(announcement.PhotoPaths) > 0 {
		if err := s.repo.Update(ctx, announcement); err != nil {
			return nil, fmt.Errorf("failed to save announcement photos: %w", err)
		}
	}

	if err := s.searchSvc.IndexAnnouncement(announcement); err != nil {
		log.Printf("failed to index announcement %s: %v", announcement.ID, err)
	}
	s.notificationSvc.PublishBellEvent(ctx, "announcement_created")

	return s.toResponse(announcement, now), nil
}

func (s *announcementService) GetAnnouncement(ctx context.Context, id uuid.UUID) (*dto.AnnouncementResponse, error) {
	announcement, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "announcement")
	}
	return s.toResponse(announcement, time.Now()), nil
}

func (s *announcementService) ListAnnouncements(ctx context.Context, query dto.AnnouncementFilterQuery) ([]*dto.AnnouncementResponse, int64, error) {
	announcements, total, err := s.repo.FindAll(ctx, repository.AnnouncementFilter{
		Status:     query.Status,
		Department: query.Department,
	}, query.Offset(), query.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list announcements: %w", err)
	}

	now := time.Now()
	responses := make([]*dto.AnnouncementResponse, 0, len(announcements))
	for _, a := range announcements {
		responses = append(responses, s.toResponse(a, now))
	}
	return responses, total, nil
}

func (s *announcementService) UpdateAnnouncement(ctx context.Context, id uuid.UUID, input dto.UpdateAnnouncementInput) (*dto.AnnouncementResponse, error) {
	announcement, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "announcement")
	}
	if announcement.Status == model.AnnouncementStatusRemoved {
		return nil, fmt.Errorf("%w: announcement is removed", apperror.ErrBadRequest)
	}

	if input.Title != "" {
		announcement.Title = input.Title
	}
	if input.Body != "" {
		announcement.Body = input.Body
	}
	if input.Department != "" {
		announcement.Department = input.Department
	}
	if input.StartDate != nil {
		announcement.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		announcement.EndDate = *input.EndDate
	}
	if announcement.EndDate.Before(announcement.StartDate) {
		return nil, fmt.Errorf("%w: end_date before start_date", apperror.ErrInvalidInput)
	}
	if input.IsUrgent != nil {
		announcement.IsUrgent = *input.IsUrgent
	}
	if input.Status != "" {
		announcement.Status = model.AnnouncementStatus(input.Status)
	}

	if err := s.repo.Update(ctx, announcement); err != nil {
		return nil, fmt.Errorf("failed to update announcement: %w", err)
	}

	if err := s.searchSvc.IndexAnnouncement(announcement); err != nil {
		log.Printf("failed to index announcement %s: %v", announcement.ID, err)
	}
	s.notificationSvc.PublishBellEvent(ctx, "announcement_updated")

	return s.toResponse(announcement, time.Now()), nil
}

// DeleteAnnouncement soft-deletes: the record stays, the status flips.
func (s *announcementService) DeleteAnnouncement(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return wrapNotFound(err, "announcement")
	}

	if err := s.searchSvc.DeleteAnnouncement(id.String()); err != nil {
		log.Printf("failed to drop announcement %s from search index: %v", id, err)
	}
	s.notificationSvc.PublishBellEvent(ctx, "announcement_removed")
	return nil
}

// UpcomingUrgent is the announcement half of the notification bell: pending
// or scheduled, starting within the configured urgency window.
func (s *announcementService) UpcomingUrgent(ctx context.Context) ([]*dto.AnnouncementResponse, error) {
	cfg, err := s.configSvc.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	horizon := now.Add(time.Duration(cfg.UrgentAnnouncementThreshold) * time.Hour)
	upcoming, err := s.repo.FindUpcoming(ctx, horizon)
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming announcements: %w", err)
	}

	var responses []*dto.AnnouncementResponse
	for _, a := range upcoming {
		if moderation.IsUpcomingUrgent(a, cfg.UrgentAnnouncementThreshold, now) {
			responses = append(responses, s.toResponse(a, now))
		}
	}
	return responses, nil
}

func (s *announcementService) toResponse(a *model.Announcement, now time.Time) *dto.AnnouncementResponse {
	return &dto.AnnouncementResponse{
		Announcement:    a,
		EffectiveStatus: moderation.DeriveAnnouncementStatus(a, now),
	}
}
