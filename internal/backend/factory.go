package backend

import (
	"fmt"
	"log/slog"

	"gbank/internal/backend/memory"
	"gbank/internal/storage"
)

// Factory creates stores from configuration.
type Factory struct {
	logger *slog.Logger
}

// NewFactory returns a factory logging through the given logger.
func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// Create builds the store named by config.Type.
func (f *Factory) Create(config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
		return &Result{Store: repo, Cleanup: repo.Close}, nil

	default:
		dataDir := config.DataDirectory
		if dataDir == "" {
			dataDir = "data"
		}
		store := memory.NewFromFiles(dataDir)
		f.logger.Info("Initialized memory backend", "data_directory", dataDir)
		return &Result{Store: store}, nil
	}
}
