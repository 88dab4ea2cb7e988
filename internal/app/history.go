package app

import (
	"fmt"

	"github.com/denverdino/news-aggregator/internal/config"
	"github.com/denverdino/news-aggregator/internal/logger"
	"github.com/denverdino/news-aggregator/internal/storage"
)

// OpenHistory picks the sent-history backend: Postgres when a database
// URL is configured, a local JSON file otherwise. Both backends satisfy
// storage.History, so the pipeline never knows which one it got.
func OpenHistory(cfg *config.Config) (storage.History, error) {
	if cfg.DatabaseURL != "" {
		h, err := storage.NewPostgresHistory(cfg.DatabaseURL, cfg.HistoryTTL)
		if err != nil {
			return nil, fmt.Errorf("open postgres history: %w", err)
		}
		logger.Info("using postgres sent-history")
		return h, nil
	}

	h, err := storage.NewFileHistory(cfg.HistoryFile, cfg.HistoryTTL)
	if err != nil {
		return nil, fmt.Errorf("open file history: %w", err)
	}
	logger.Info("using file sent-history", "path", cfg.HistoryFile)
	return h, nil
}
