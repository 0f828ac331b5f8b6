package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"graphblog/cmd/app"
	"graphblog/internal/config"
	"graphblog/internal/logger"
	"graphblog/internal/server"
)

const (
	connectTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	// setting up config
	cfg := config.LoadConfig()
	log := logger.Get(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatalw("Некорректная конфигурация", "error", err)
	}

	// the server starts listening only after the database is reachable
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	a, err := app.New(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Fatalw("Не удалось запустить приложение", "error", err)
	}

	srv := &server.Server{}
	go func() {
		log.Infow("Сервер запущен", "port", cfg.ServerPort, "db", cfg.DB.Driver, "storage", cfg.Storage.Driver)
		if err := srv.Run(cfg.ServerPort, a.Handler); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("Ошибка запуска сервера", "error", err)
		}
	}()

	waitForShutdown(srv, a, log)
}

// waitForShutdown blocks until SIGINT/SIGTERM and then drains in-flight requests.
func waitForShutdown(srv *server.Server, a *app.App, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("Останавливаем сервер...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("Принудительная остановка сервера", "error", err)
	}

	if err := a.Close(ctx); err != nil {
		log.Errorw("Ошибка при закрытии подключения к БД", "error", err)
	}

	_ = log.Sync()
}
