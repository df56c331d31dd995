package config

import (
	"fmt"
	"os"

	"cue-cards/internal/repository"
	"cue-cards/internal/repository/file"
	"cue-cards/internal/repository/memory"
	"cue-cards/internal/repository/sqlite"
)

// CreateDocumentStore creates the document store selected by the storage driver
func CreateDocumentStore(config *Config) (repository.DocumentStore, error) {
	switch config.Storage.Driver {
	case DriverMemory:
		return memory.New(), nil
	case DriverSQLite:
		if err := os.MkdirAll(config.Storage.Dir, os.FileMode(config.Storage.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
		store, err := sqlite.New(config.GetStorePath())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sqlite store: %w", err)
		}
		return store, nil
	case DriverFile:
		store, err := file.New(config.GetStorePath(), file.WithDirPermissions(os.FileMode(config.Storage.DirPermissions)))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file store: %w", err)
		}
		return store, nil
	default:
		return nil, &ConfigError{Field: "storage.driver", Message: "unknown driver " + config.Storage.Driver}
	}
}

// CreateTestDocumentStore creates an in-memory sqlite store for testing
func CreateTestDocumentStore() (repository.DocumentStore, error) {
	store, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test store: %w", err)
	}
	return store, nil
}
