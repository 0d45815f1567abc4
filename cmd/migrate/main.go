package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/expatsolutions/leads-api/config"
	"github.com/expatsolutions/leads-api/internal/database/mongodb"
	"github.com/expatsolutions/leads-api/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Unlike the API server, index bootstrap has nothing to do without a store
	if cfg.Database.URL == "" {
		logger.Error("MONGO_URL is required to bootstrap indexes")
		os.Exit(1)
	}

	logger.Info("Starting index bootstrap",
		zap.String("database", cfg.Database.Name),
		zap.String("url", maskDatabaseURL(cfg.Database.URL)))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := mongodb.NewClient(ctx, &mongodb.Config{
		URL:            cfg.Database.URL,
		Database:       cfg.Database.Name,
		ConnectTimeout: time.Duration(cfg.Database.ConnectTimeoutSeconds) * time.Second,
	})
	if err != nil {
		logger.Error("Failed to connect to MongoDB", zap.Error(err))
		os.Exit(1)
	}
	defer store.Close(context.Background())

	// Idempotent: existing indexes are left untouched
	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Error("Failed to ensure indexes", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Index bootstrap completed successfully")
}

// maskDatabaseURL masks credentials in the connection string for logging
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:20] + "***"
	}
	return "***"
}
