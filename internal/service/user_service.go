package service

import (
	"context"
	"errors"

	"graphblog/internal/models"
	"graphblog/internal/repository"
)

type UserService interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateStatus(ctx context.Context, userID, status string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{
		userRepo: userRepo,
	}
}

func (s *userService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError("No user found!", err)
		}
		return nil, NewInternalError(err)
	}

	return user, nil
}

func (s *userService) UpdateStatus(ctx context.Context, userID, status string) (*models.User, error) {
	// get user by id
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	err := s.userRepo.UpdateStatus(ctx, userID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError("No user found!", err)
		}
		return nil, NewInternalError(err)
	}

	return s.GetUser(ctx, userID)
}
