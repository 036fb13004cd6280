package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"assetboard/internal/auth"
	"assetboard/internal/config"
	"assetboard/internal/models"
	"assetboard/internal/store"
	"assetboard/internal/web"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	cfg := config.Load()

	// Configure GORM logger to ignore "record not found" errors
	// These are expected on profile and asset lookups that 404
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := models.Migrate(db, cfg.AssetThesisUnique); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	st := store.NewStore(db)
	sessions := auth.NewSessions([]byte(cfg.SessionSecret), cfg.SessionTTL, cfg.RememberTTL)
	server := web.NewServer(cfg, st, sessions)

	log.Printf("Starting HTTP server on 0.0.0.0:%s", cfg.HTTPPort)
	if err := http.ListenAndServe("0.0.0.0:"+cfg.HTTPPort, server); err != nil {
		log.Fatalf("HTTP server failed: %v", err)
	}
}
