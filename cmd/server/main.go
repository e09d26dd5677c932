package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/civicgate/email-validation/configs"
	"github.com/civicgate/email-validation/internal/application/services"
	"github.com/civicgate/email-validation/internal/core/domain/feature"
	"github.com/civicgate/email-validation/internal/core/ports"
	"github.com/civicgate/email-validation/internal/infrastructure/db"
	"github.com/civicgate/email-validation/internal/infrastructure/events"
	"github.com/civicgate/email-validation/internal/infrastructure/health"
	"github.com/civicgate/email-validation/internal/infrastructure/httpserver"
	"github.com/civicgate/email-validation/internal/infrastructure/redis"
	"github.com/civicgate/email-validation/internal/infrastructure/repositories"
)

func main() {
	// Load configuration
	cfg, err := configs.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting profile e-mail validation service...")

	// Initialize the profile database (apply pool settings from config)
	database, err := db.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	// Initialize the token store client
	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	logger.Info("Connected to Redis successfully")

	// Run migrations
	if err := database.Migrate("./migrations"); err != nil {
		logger.Warn("Failed to run migrations:", err)
	}

	// Repositories
	tokenStore := repositories.NewTokenStoreRedisRepository(redisClient, logger)
	profileRepo := repositories.NewProfileRepository(database, logger)
	profileEmailRepo := repositories.NewProfileEmailRepository(database, logger)

	// Uniqueness enforcement rollout predicate
	enforcement := feature.NewPredicate(cfg.Validation.EnforcementMode, cfg.Validation.EnforcementBetaUsers)

	tracker := events.NewTracker(logger)

	validationService := services.NewEmailValidationService(
		tokenStore,
		profileRepo,
		profileEmailRepo,
		enforcement,
		tracker,
		services.RedirectURLs{
			ConfirmBaseURL:  cfg.Validation.ConfirmPageURL,
			CallbackBaseURL: cfg.Validation.CallbackURL,
		},
		logger,
	)

	hcSlice := []ports.HealthChecker{
		health.NewDBHealthChecker(database),
		health.NewRedisHealthChecker(redisClient),
		health.NewURLHealthChecker("callback_url", cfg.Validation.CallbackURL),
	}

	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		TLSCertFile:  cfg.Server.TLSCertFile,
		TLSKeyFile:   cfg.Server.TLSKeyFile,
	}

	deps := httpserver.ServerDeps{
		ValidationService: validationService,
		HealthCheckers:    hcSlice,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
