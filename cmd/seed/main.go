package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/mentormind-api/internal/seed"
	"github.com/noah-isme/mentormind-api/pkg/config"
	"github.com/noah-isme/mentormind-api/pkg/database"
	"github.com/noah-isme/mentormind-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	if err := seed.Run(ctx, db, time.Now(), logr); err != nil {
		logr.Fatal("seed failed", zap.Error(err))
	}
	logr.Info("demo accounts ready", zap.Strings("emails", []string{"teacher1@school.com", "teacher2@school.com", "admin@school.com"}))
}
