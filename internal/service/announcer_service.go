package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/campusgo/admin-backend/internal/dto"
	"github.com/campusgo/admin-backend/internal/model"
	"github.com/campusgo/admin-backend/internal/repository"
	"github.com/campusgo/admin-backend/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnnouncerService interface {
	CreateAnnouncer(ctx context.Context, input dto.CreateAnnouncerInput, avatar *dto.PhotoFile) (*model.Announcer, error)
	GetAnnouncer(ctx context.Context, id uuid.UUID) (*model.Announcer, error)
	ListAnnouncers(ctx context.Context, query dto.AnnouncerFilterQuery) ([]*model.Announcer, int64, error)
	UpdateAnnouncer(ctx context.Context, id uuid.UUID, input dto.UpdateAnnouncerInput, avatar *dto.PhotoFile) (*model.Announcer, error)
	SetAnnouncerStatus(ctx context.Context, id uuid.UUID, status model.AnnouncerStatus) error
	ListAffiliations(ctx context.Context, affiliationType string) ([]*model.Affiliation, error)
}

type announcerService struct {
	repo         repository.AnnouncerRepository
	imageStorage storage.ImageStorage
}

func NewAnnouncerService(repo repository.AnnouncerRepository, imageStorage storage.ImageStorage) AnnouncerService {
	return &announcerService{
		repo:         repo,
		imageStorage: imageStorage,
	}
}

func (s *announcerService) CreateAnnouncer(ctx context.Context, input dto.CreateAnnouncerInput, avatar *dto.PhotoFile) (*model.Announcer, error) {
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, errors.New("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// A custom affiliation name becomes a lookup entry on first use.
	if _, err := s.repo.FindOrCreateAffiliation(ctx, input.AffiliationType, input.AffiliationName); err != nil {
		return nil, fmt.Errorf("failed to persist affiliation: %w", err)
	}

	announcer := &model.Announcer{
		Name:            input.Name,
		Email:           input.Email,
		AffiliationType: input.AffiliationType,
		AffiliationName: input.AffiliationName,
		Status:          model.AnnouncerStatusActive,
	}

	if avatar != nil && avatar.Reader != nil && s.imageStorage != nil {
		url, err := s.imageStorage.UploadImage(ctx, avatar.Reader, "announcers", avatar.FileName)
		if err != nil {
			return nil, err
		}
		announcer.AvatarURL = &url
	}

	if err := s.repo.Create(ctx, announcer); err != nil {
		return nil, fmt.Errorf("failed to create announcer: %w", err)
	}
	return announcer, nil
}

func (s *announcerService) GetAnnouncer(ctx context.Context, id uuid.UUID) (*model.Announcer, error) {
	announcer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "announcer")
	}
	return announcer, nil
}

func (s *announcerService) ListAnnouncers(ctx context.Context, query dto.AnnouncerFilterQuery) ([]*model.Announcer, int64, error) {
	announcers, total, err := s.repo.FindAll(ctx, query.Status, query.Offset(), query.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list announcers: %w", err)
	}
	return announcers, total, nil
}

func (s *announcerService) UpdateAnnouncer(ctx context.Context, id uuid.UUID, input dto.UpdateAnnouncerInput, avatar *dto.PhotoFile) (*model.Announcer, error) {
	announcer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "announcer")
	}

	if input.Email != "" && input.Email != announcer.Email {
		if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
			return nil, errors.New("email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		announcer.Email = input.Email
	}

	if input.Name != "" {
		announcer.Name = input.Name
	}

	if input.AffiliationType != "" && input.AffiliationName != "" {
		if _, err := s.repo.FindOrCreateAffiliation(ctx, input.AffiliationType, input.AffiliationName); err != nil {
			return nil, fmt.Errorf("failed to persist affiliation: %w", err)
		}
		announcer.AffiliationType = input.AffiliationType
		announcer.AffiliationName = input.AffiliationName
	}

	if avatar != nil && avatar.Reader != nil && s.imageStorage != nil {
		url, err := s.imageStorage.UploadImage(ctx, avatar.Reader, "announcers", avatar.FileName)
		if err != nil {
			return nil, err
		}
		announcer.AvatarURL = &url
	}

	if err := s.repo.Update(ctx, announcer); err != nil {
		return nil, fmt.Errorf("failed to update announcer: %w", err)
	}
	return announcer, nil
}

func (s *announcerService) SetAnnouncerStatus(ctx context.Context, id uuid.UUID, status model.AnnouncerStatus) error {
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return wrapNotFound(err, "announcer")
	}
	return nil
}

func (s *announcerService) ListAffiliations(ctx context.Context, affiliationType string) ([]*model.Affiliation, error) {
	return s.repo.FindAffiliations(ctx, affiliationType)
}
