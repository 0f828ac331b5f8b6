package handlers

import (
	"graphblog/internal/config"
	"graphblog/internal/logger"
	"graphblog/internal/service"

	"github.com/graph-gophers/graphql-go"
)

type Handlers struct {
	ImageService  service.ImageService
	HealthService service.HealthService
	Schema        *graphql.Schema
	Cfg           *config.Config
	Log           *logger.Logger
}

func NewHandlers(service *service.Service, schema *graphql.Schema, config *config.Config, log *logger.Logger) *Handlers {
	return &Handlers{
		ImageService:  service.Image,
		HealthService: service.Health,
		Schema:        schema,
		Cfg:           config,
		Log:           log,
	}
}
