package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gravadigital/prestigio-api/internal/backup"
	"github.com/gravadigital/prestigio-api/internal/config"
	"github.com/gravadigital/prestigio-api/internal/logger"
	"github.com/gravadigital/prestigio-api/internal/server"
	"github.com/gravadigital/prestigio-api/internal/storage"
	"github.com/gravadigital/prestigio-api/internal/storage/document"
	"github.com/gravadigital/prestigio-api/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.LogLevel)
	log := logger.HTTP()

	store, err := buildStore(cfg)
	if err != nil {
		log.Error("Failed to initialize storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}

	var uploader *backup.Uploader
	if cfg.BackupEnabled() {
		uploader, err = backup.NewUploader(cfg)
		if err != nil {
			log.Error("Failed to initialize backup uploader", "error", err)
			os.Exit(1)
		}
	}

	srv := server.New(cfg, store, uploader)

	go func() {
		if err := srv.Start(); err != nil {
			log.Error("Server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

func buildStore(cfg *config.Config) (storage.Store, error) {
	storageType, err := storage.ValidateStorageType(cfg.Storage.Backend)
	if err != nil {
		return nil, err
	}

	switch storageType {
	case storage.StorageTypePostgres:
		db, err := postgres.Connect(cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.AutoMigrate(db); err != nil {
			return nil, err
		}
		return postgres.NewStore(db), nil
	default:
		return document.New(cfg.Storage.DataFile), nil
	}
}
