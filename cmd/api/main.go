package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sefazor/eventrsvp-backend/internal/config"
	"github.com/sefazor/eventrsvp-backend/internal/handler"
	"github.com/sefazor/eventrsvp-backend/internal/repository"
	"github.com/sefazor/eventrsvp-backend/internal/router"
	"github.com/sefazor/eventrsvp-backend/internal/service"
	"github.com/sefazor/eventrsvp-backend/pkg/database"
	jwtPkg "github.com/sefazor/eventrsvp-backend/pkg/jwt"
	"github.com/sefazor/eventrsvp-backend/pkg/logger"
	"github.com/sefazor/eventrsvp-backend/pkg/utils"
)

func main() {
	// A missing .env is fine; the environment may already be populated.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zapLog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zapLog.Sync() }()

	// Initialize database
	db, err := database.Open(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		zapLog.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zapLog.Fatal("failed to migrate database", zap.Error(err))
	}
	if err := database.SeedAdmin(context.Background(), db, database.AdminSeed{
		Username: cfg.Admin.Username,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	}, zapLog); err != nil {
		zapLog.Fatal("failed to seed admin", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	rsvpRepo := repository.NewRSVPRepository(db)

	tokens := jwtPkg.NewTokenManager(cfg.JWTSecret, jwtPkg.WithIssuer(cfg.JWTIssuer))
	validator := utils.NewValidator()

	// Services
	authService := service.NewAuthService(userRepo, tokens, validator, zapLog)
	userService := service.NewUserService(userRepo, rsvpRepo, tokens)
	eventService := service.NewEventService(eventRepo, rsvpRepo, validator, zapLog)

	app := router.New(router.Handlers{
		Auth:  handler.NewAuthHandler(authService, zapLog),
		User:  handler.NewUserHandler(userService, zapLog),
		Event: handler.NewEventHandler(eventService, zapLog),
	}, authService, zapLog, router.Options{
		AllowOrigins:       cfg.AllowOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		zapLog.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zapLog.Error("shutdown failed", zap.Error(err))
		}
	}()

	zapLog.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Environment))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zapLog.Fatal("server stopped", zap.Error(err))
	}
}
