package service

import (
	"context"

	"graphblog/internal/repository"
)

type HealthService interface {
	Check(ctx context.Context) error
}

type healthService struct {
	healthRepo repository.HealthRepository
}

func NewHealthService(healthRepo repository.HealthRepository) HealthService {
	return &healthService{healthRepo: healthRepo}
}

func (h *healthService) Check(ctx context.Context) error {
	return h.healthRepo.Ping(ctx)
}
