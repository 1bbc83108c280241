// Splyce backend: scans restaurant receipts with a vision model and
// splits the bill among participants.
package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/splycehq/splyce-backend/docs"
	"github.com/splycehq/splyce-backend/internal/config"
	"github.com/splycehq/splyce-backend/internal/database"
	"github.com/splycehq/splyce-backend/internal/handler"
	"github.com/splycehq/splyce-backend/internal/history"
	"github.com/splycehq/splyce-backend/internal/openai"
	"github.com/splycehq/splyce-backend/internal/repository"
	"github.com/splycehq/splyce-backend/internal/server"
	"github.com/splycehq/splyce-backend/internal/service"
	"github.com/splycehq/splyce-backend/internal/session"
	"github.com/splycehq/splyce-backend/internal/storage"
	"github.com/splycehq/splyce-backend/pkg/logging"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Configure(cfg.LogFormat, cfg.LogLevel)
	logger := slog.Default()

	openAIClient := openai.NewClient(&openai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		ModelID: cfg.OpenAIModelID,
		Timeout: cfg.OpenAITimeout,
	})

	var archiver *storage.ReceiptArchiver
	if cfg.ArchiveImages {
		archiver, err = storage.NewReceiptArchiver(&storage.Config{
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			AccessKeySecret: cfg.S3AccessSecret,
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
		})
		if err != nil {
			logger.Warn("image archival disabled", "error", err)
			archiver = nil
		}
	}

	historyRepo, cleanup, err := buildHistoryRepository(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize history storage", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	historyStore := history.NewStore(historyRepo)
	sessions := session.NewManager(historyStore)
	scanService := service.NewScanService(openAIClient, archiver, cfg.MaxWorkers, logger)

	appServer := server.NewServer(cfg, logger)
	appServer.RegisterRoutes(
		handler.NewReceiptHandler(scanService, logger),
		handler.NewReviewHandler(logger),
		handler.NewSplitHandler(sessions, logger),
		handler.NewHistoryHandler(historyStore),
	)

	if err := appServer.Start(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// buildHistoryRepository picks the configured history backend. The
// returned cleanup closes the database pool when one was opened.
func buildHistoryRepository(cfg *config.Config, logger *slog.Logger) (history.Repository, func(), error) {
	if cfg.HistoryBackend == "postgres" {
		db, err := database.NewPostgresDB(context.Background(), cfg.PostgresDBURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("history backend: postgres")
		return repository.NewPostgresHistoryRepository(db.Pool()), db.Close, nil
	}

	repo, err := repository.NewFileHistoryRepository(cfg.HistoryDir)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("history backend: file", "dir", cfg.HistoryDir)
	return repo, func() {}, nil
}
