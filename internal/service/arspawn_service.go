package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/campusgo/admin-backend/internal/dto"
	"github.com/campusgo/admin-backend/internal/model"
	"github.com/campusgo/admin-backend/internal/moderation"
	"github.com/campusgo/admin-backend/internal/repository"
	"github.com/campusgo/admin-backend/pkg/apperror"
	"github.com/google/uuid"
)

type ARSpawnService interface {
	CreateSpawn(ctx context.Context, input dto.CreateSpawnInput) (*dto.SpawnResponse, error)
	GetSpawn(ctx context.Context, id uuid.UUID) (*dto.SpawnResponse, error)
	ListSpawns(ctx context.Context, query dto.SpawnFilterQuery) ([]*dto.SpawnResponse, int64, error)
	UpdateSpawn(ctx context.Context, id uuid.UUID, input dto.UpdateSpawnInput) (*dto.SpawnResponse, error)
	DeactivateSpawn(ctx context.Context, id uuid.UUID) error
}

type arSpawnService struct {
	repo repository.ARSpawnRepository
}

func NewARSpawnService(repo repository.ARSpawnRepository) ARSpawnService {
	return &arSpawnService{repo: repo}
}

func (s *arSpawnService) CreateSpawn(ctx context.Context, input dto.CreateSpawnInput) (*dto.SpawnResponse, error) {
	spawn := &model.ARSpawn{
		Name:           input.Name,
		Slug:           slugify(input.Name),
		Category:       input.Category,
		Rarity:         model.Rarity(input.Rarity),
		CatchableCount: input.CatchableCount,
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
		CatchRadius:    input.CatchRadius,
		RevealRadius:   input.RevealRadius,
		Point:          input.Point,
		CoinValue:      input.CoinValue,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		Status:         model.SpawnStatusActive,
	}
	for _, loc := range input.Locations {
		spawn.Locations = append(spawn.Locations, model.SpawnLocation{
			Name:      loc.Name,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
		})
	}

	if err := validateSpawn(spawn); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, spawn); err != nil {
		return nil, fmt.Errorf("failed to create spawn: %w", err)
	}
	return s.toResponse(spawn, time.Now()), nil
}

func (s *arSpawnService) GetSpawn(ctx context.Context, id uuid.UUID) (*dto.SpawnResponse, error) {
	spawn, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "spawn")
	}
	return s.toResponse(spawn, time.Now()), nil
}

func (s *arSpawnService) ListSpawns(ctx context.Context, query dto.SpawnFilterQuery) ([]*dto.SpawnResponse, int64, error) {
	spawns, total, err := s.repo.FindAll(ctx, repository.SpawnFilter{
		Category: query.Category,
		Rarity:   query.Rarity,
		Status:   query.Status,
	}, query.Offset(), query.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list spawns: %w", err)
	}

	now := time.Now()
	responses := make([]*dto.SpawnResponse, 0, len(spawns))
	for _, spawn := range spawns {
		responses = append(responses, s.toResponse(spawn, now))
	}
	return responses, total, nil
}

func (s *arSpawnService) UpdateSpawn(ctx context.Context, id uuid.UUID, input dto.UpdateSpawnInput) (*dto.SpawnResponse, error) {
	spawn, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "spawn")
	}

	if input.Name != "" {
		spawn.Name = input.Name
	}
	if input.Category != "" {
		spawn.Category = input.Category
	}
	if input.Rarity != "" {
		spawn.Rarity = model.Rarity(input.Rarity)
	}
	if input.CatchableCount != nil {
		spawn.CatchableCount = *input.CatchableCount
	}
	if input.Latitude != nil {
		spawn.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		spawn.Longitude = input.Longitude
	}
	if input.Locations != nil {
		spawn.Locations = spawn.Locations[:0]
		for _, loc := range input.Locations {
			spawn.Locations = append(spawn.Locations, model.SpawnLocation{
				SpawnID:   spawn.ID,
				Name:      loc.Name,
				Latitude:  loc.Latitude,
				Longitude: loc.Longitude,
			})
		}
		// A location list replaces single-point geometry.
		if len(spawn.Locations) > 0 {
			spawn.Latitude = nil
			spawn.Longitude = nil
		}
	}
	if input.CatchRadius != nil {
		spawn.CatchRadius = *input.CatchRadius
	}
	if input.RevealRadius != nil {
		spawn.RevealRadius = *input.RevealRadius
	}
	if input.Point != nil {
		spawn.Point = *input.Point
	}
	if input.CoinValue != nil {
		spawn.CoinValue = *input.CoinValue
	}
	if input.StartTime != nil {
		spawn.StartTime = input.StartTime
	}
	if input.EndTime != nil {
		spawn.EndTime = input.EndTime
	}

	if err := validateSpawn(spawn); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, spawn); err != nil {
		return nil, fmt.Errorf("failed to update spawn: %w", err)
	}
	return s.toResponse(spawn, time.Now()), nil
}

// DeactivateSpawn is the spawn flavor of soft delete.
func (s *arSpawnService) DeactivateSpawn(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SetStatus(ctx, id, model.SpawnStatusInactive); err != nil {
		return wrapNotFound(err, "spawn")
	}
	return nil
}

// validateSpawn enforces the cross-field rules the binding tags cannot: the
// rarity-driven catchable range, exactly one geometry kind, and radius
// ordering.
func validateSpawn(spawn *model.ARSpawn) error {
	rng, ok := model.RangeFor(spawn.Rarity)
	if !ok {
		return fmt.Errorf("%w: unknown rarity %q", apperror.ErrInvalidInput, spawn.Rarity)
	}
	if spawn.CatchableCount < rng.Min || spawn.CatchableCount > rng.Max {
		return fmt.Errorf("%w: catchable count for %s must be between %d and %d",
			apperror.ErrInvalidInput, spawn.Rarity, rng.Min, rng.Max)
	}

	hasPoint := spawn.Latitude != nil && spawn.Longitude != nil
	hasLocations := len(spawn.Locations) > 0
	if hasPoint == hasLocations {
		return fmt.Errorf("%w: provide either a lat/long pair or a list of named locations",
			apperror.ErrInvalidInput)
	}

	if spawn.RevealRadius < spawn.CatchRadius {
		return fmt.Errorf("%w: reveal radius must not be smaller than catch radius",
			apperror.ErrInvalidInput)
	}

	if spawn.StartTime != nil && spawn.EndTime != nil && spawn.EndTime.Before(*spawn.StartTime) {
		return fmt.Errorf("%w: end time before start time", apperror.ErrInvalidInput)
	}

	return nil
}

func (s *arSpawnService) toResponse(spawn *model.ARSpawn, now time.Time) *dto.SpawnResponse {
	return &dto.SpawnResponse{
		ARSpawn:         spawn,
		EffectiveStatus: moderation.DeriveSpawnStatus(spawn, now),
	}
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	slug = strings.Trim(slug, "-")
	return fmt.Sprintf("%s-%s", slug, uuid.NewString()[:8])
}
