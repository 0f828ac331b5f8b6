package app

import (
	"context"
	"fmt"
	"net/http"

	"graphblog/internal/config"
	"graphblog/internal/database"
	"graphblog/internal/graph"
	handlers "graphblog/internal/handler"
	"graphblog/internal/logger"
	"graphblog/internal/middleware"
	"graphblog/internal/repository"
	"graphblog/internal/repository/memory"
	"graphblog/internal/repository/mongodb"
	"graphblog/internal/service"
	"graphblog/internal/storage"
)

// App holds the wired dependencies of the API server.
type App struct {
	Repo    *repository.Repository
	Service *service.Service
	Storage storage.Storage
	Handler http.Handler

	closeDB func(ctx context.Context) error
}

// New connects the persistence layer and image storage and builds the HTTP
// handler chain.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	// connection DB
	repo, closeDB, err := openRepository(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	// connection storage
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		closeDB(ctx)
		return nil, err
	}

	// enabling dependencies
	services := service.NewService(repo, cfg, store, log)

	schema, err := graph.NewSchema(services, log)
	if err != nil {
		closeDB(ctx)
		return nil, err
	}

	h := handlers.NewHandlers(services, schema, cfg, log)

	handlerChain := middleware.Chain(
		h.Routes(store.Handler()),
		middleware.AuthMiddleware(services.Auth, log),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware(log),
	)

	return &App{
		Repo:    repo,
		Service: services,
		Storage: store,
		Handler: handlerChain,
		closeDB: closeDB,
	}, nil
}

func (a *App) Close(ctx context.Context) error {
	if a.closeDB == nil {
		return nil
	}
	return a.closeDB(ctx)
}

func openRepository(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repository.Repository, func(context.Context) error, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err := database.ConnectDB(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRepository(db.DB), func(context.Context) error { return db.CloseDB() }, nil

	case config.DriverMongo:
		m, err := database.ConnectMongo(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return mongodb.NewRepository(m.Database), m.Close, nil

	case config.DriverMemory:
		log.Warnw("Данные хранятся в памяти и будут потеряны при перезапуске")
		return memory.NewRepository(), func(context.Context) error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("неизвестный DB_DRIVER: %q", cfg.DB.Driver)
	}
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageLocal:
		log.Infow("Изображения хранятся на диске", "dir", cfg.Storage.ImagesDir)
		return storage.NewLocalStorage(cfg.Storage.ImagesDir)

	case config.StorageMinIO:
		client, err := storage.NewMinIOClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("не удалось инициализировать MinIO: %w", err)
		}
		log.Infow("Изображения хранятся в MinIO", "endpoint", cfg.Storage.MinIO.Endpoint, "bucket", cfg.Storage.MinIO.BucketName)
		return client, nil

	default:
		return nil, fmt.Errorf("неизвестный STORAGE_DRIVER: %q", cfg.Storage.Driver)
	}
}
