package main

import (
	"context"
	"fmt"
	"log"

	"courier/config"
	"courier/internal/events"
	"courier/internal/handler"
	"courier/internal/repository"
	"courier/internal/server"
	"courier/internal/services"
	"courier/internal/storage"
	"courier/pkg/database"
	"courier/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	logger.SetGlobalLogger(l)

	database.Connect(cfg)
	defer database.Close()

	if err := database.RunFullMigration("migrations"); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	publisher := events.NewRedisPublisher(
		fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		cfg.RedisPassword,
		cfg.RedisDB,
	)
	defer publisher.Close()

	var fileStore services.FileStore
	if cfg.S3Bucket != "" {
		s3Client, err := storage.NewClient(context.Background(), storage.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
		})
		if err != nil {
			log.Fatalf("Failed to initialize s3 storage: %v", err)
		}
		fileStore = s3Client
	} else {
		l.Infof("S3_BUCKET not set, file attachments disabled")
	}

	userRepo := repository.NewUserRepository(database.DB)
	convRepo := repository.NewConversationRepository(database.DB)
	msgRepo := repository.NewMessageRepository(database.DB)

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiryMin)
	uploads := services.NewUploadService(fileStore, cfg.MaxFileBytes)
	conversations := services.NewConversationService(convRepo, userRepo, msgRepo)
	messages := services.NewMessageService(database.DB, msgRepo, userRepo, conversations, uploads, publisher, l)

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Message:      handler.NewMessageHandler(messages),
		Conversation: handler.NewConversationHandler(conversations),
	}, tokens)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
}
