package database

import (
	"context"
	"fmt"

	"graphblog/internal/config"
	"graphblog/internal/logger"
	"graphblog/internal/repository/mongodb"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func ConnectMongo(ctx context.Context, cfg *config.Config, log *logger.Logger) (*MongoDB, error) {
	log.Infow("Подключаемся к MongoDB", "database", cfg.DB.MongoDatabase)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.DB.MongoConnURI()))
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ошибка при проверке подключения к MongoDB: %w", err)
	}

	db := client.Database(cfg.DB.MongoDatabase)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Infow("Успешное подключение к MongoDB")
	return &MongoDB{Client: client, Database: db}, nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
