// Package cli consolidates the startup steps shared by cmd/homeledger
// and cmd/homeledger-worker.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"homeledger/internal/config"
	"homeledger/internal/log"
	"homeledger/internal/storage"
)

// Bootstrap loads the .env file, installs the default structured
// logger and returns a validated configuration. Exits the process on
// configuration errors: a binary that cannot configure itself has
// nothing useful left to do.
func Bootstrap(component string) (*config.Config, *log.Logger) {
	// .env is for local development only; absence is not an error.
	_ = godotenv.Load()

	logCfg := log.DefaultConfig()
	logCfg.Component = component
	logger := log.New(logCfg)
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg, logger
}

// InitSQLite opens the SQLite repository or exits on failure.
func InitSQLite(logger *log.Logger, dbPath string) *storage.SQLiteRepository {
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return repo
}
