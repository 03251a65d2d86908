package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coursehub/internal/api/v1/router"
	"coursehub/internal/config"
	"coursehub/internal/database"
	"coursehub/internal/logger"
	"coursehub/internal/pgmq"
	"coursehub/internal/pubsub"
	"coursehub/internal/service"
	"coursehub/internal/storage"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// @title CourseHub API
// @version 1.0
// @description Courses, sessions and registrations
// @host localhost:8080
// @BasePath /v1
// @Schemes http https

func main() {
	logger := logger.New()

	// 1. Load configuration
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}

	ctx := context.Background()

	// 2. Database
	pool, err := database.Connect(ctx, cfg.DBConnectionString, cfg.IsDevelopment(), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()
	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("Failed to apply schema")
	}

	// 3. Object storage
	s3Client, err := storage.NewS3Client(ctx, storage.S3Options{
		URL:       cfg.S3URL,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create S3 client")
	}

	// 4. Cover cleanup queue
	queue := pgmq.New(pool)
	if err := queue.CreateQueue(ctx, cfg.CoverCleanupQueueName); err != nil {
		logger.Warn().Err(err).Msg("pgmq unavailable; cover cleanup jobs will not be enqueued")
	}

	// 5. Pub/Sub publisher
	var publisher pubsub.Publisher
	pub, err := pubsub.NewPublisher(ctx, cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("Pub/Sub publisher disabled")
	} else {
		defer pub.Close()
		publisher = pub
	}

	// 6. JWT key material
	var secrets service.SecretManagerService
	if cfg.JWTSecretResource != "" {
		secrets, err = service.NewSecretManagerService(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to create Secret Manager client")
		}
	}
	jwtKey, err := service.ResolveJWTKey(ctx, cfg, secrets)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to resolve JWT key")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := router.New(cfg, router.Dependencies{
		Pool:      pool,
		Covers:    storage.NewS3Store(s3Client, cfg.S3Bucket),
		Queue:     queue,
		Publisher: publisher,
		JWTKey:    jwtKey,
		Registry:  registry,
	}, logger)

	// 7. Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Msgf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Msgf("Listen: %s", err)
		}
	}()

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutdown signal received, exiting...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
		return
	}
	logger.Info().Msg("Server shut down gracefully")
}
