package service

import (
	"context"
	"fmt"

	"github.com/campusgo/admin-backend/internal/dto"
	"github.com/campusgo/admin-backend/internal/model"
	"github.com/campusgo/admin-backend/internal/repository"
	"github.com/google/uuid"
)

type UserService interface {
	ListUsers(ctx context.Context, query dto.UserFilterQuery) ([]*model.User, int64, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input dto.UpdateUserInput) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) ListUsers(ctx context.Context, query dto.UserFilterQuery) ([]*model.User, int64, error) {
	users, total, err := s.userRepo.FindAll(ctx, repository.UserFilter{
		Status:  query.Status,
		Faculty: query.Faculty,
		Search:  query.Search,
	}, query.Offset(), query.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "user")
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, input dto.UpdateUserInput) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "user")
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Faculty != "" {
		user.Faculty = input.Faculty
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
