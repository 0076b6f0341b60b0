package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/schedule_lock/internal/app"
	"github.com/Freeeeeet/schedule_lock/internal/config"
	"github.com/Freeeeeet/schedule_lock/internal/controller/httpapi"
	"github.com/Freeeeeet/schedule_lock/internal/migrations"
	"github.com/Freeeeeet/schedule_lock/internal/notify"
	"github.com/Freeeeeet/schedule_lock/internal/repository"
	"github.com/Freeeeeet/schedule_lock/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting schedule lock service",
		zap.String("environment", cfg.Environment),
		zap.String("addr", cfg.HTTPAddr),
		zap.Bool("notifications", cfg.NotificationsEnabled()))

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Service stopped with error", zap.Error(err))
	}

	logger.Info("Service stopped")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("create pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	if cfg.AutoMigrate {
		migrator, err := app.NewMigrator(pool, migrations.FS, logger)
		if err != nil {
			return err
		}
		err = migrator.Run(ctx)
		migrator.Close()
		if err != nil {
			return err
		}
	}

	var notifier service.Notifier = notify.Noop{}
	if cfg.NotificationsEnabled() {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramAdminChatID, logger)
		if err != nil {
			logger.Warn("Telegram notifier disabled", zap.Error(err))
		} else {
			notifier = tg
		}
	}

	lockService := service.NewLockService(
		repository.NewRepos(pool, logger),
		repository.NewTxManager(pool, logger),
		notifier,
		logger,
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := httpapi.NewRouter(httpapi.RouterConfig{
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
	}, lockService, pool, logger)

	return app.NewServer(cfg.HTTPAddr, router, cfg.ShutdownTimeout, logger).Run(ctx)
}
