package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"provenance.com/innovationhub/internal/bootstrap"
	"provenance.com/innovationhub/internal/config"
	"provenance.com/innovationhub/internal/logging"
	"provenance.com/innovationhub/internal/server"
	"provenance.com/innovationhub/pkg/database"
	"provenance.com/innovationhub/pkg/validator"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logging.Setup(cfg.AppEnv)
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := validator.RegisterCustomValidations(); err != nil {
		slog.Error("failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := database.Connect()
	if err != nil {
		slog.Error("failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := bootstrap.Migrate(db); err != nil {
		slog.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		slog.Warn("redis unavailable, running without cache, cooldown and live updates", slog.String("error", err.Error()))
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(cfg, db, redisClient)

	if err := bootstrap.SeedCategories(ctx, srv.CategoryService); err != nil {
		slog.Error("failed to seed categories", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := bootstrap.SeedAdminUser(ctx, srv.UserService, cfg.AdminEmail); err != nil {
		slog.Error("failed to seed admin user", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("server starting", slog.String("port", cfg.Port))
	if err := srv.Run(ctx, ":"+cfg.Port); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("server stopped")
}
