package service

import (
	"graphblog/internal/config"
	"graphblog/internal/logger"
	"graphblog/internal/repository"
	"graphblog/internal/storage"
)

type Service struct {
	User   UserService
	Post   PostService
	Auth   AuthService
	Image  ImageService
	Health HealthService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, log *logger.Logger) *Service {
	return &Service{
		User:   NewUserService(rep.User),
		Post:   NewPostService(rep.Post, rep.User, storage, cfg, log),
		Auth:   NewAuthService(rep.User, cfg, log),
		Image:  NewImageService(storage, cfg, log),
		Health: NewHealthService(rep.Health),
	}
}
