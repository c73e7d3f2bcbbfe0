package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"tally/internal/config"
	"tally/internal/service"
	"tally/internal/storage"
)

// initStorage opens the configured database and brings its schema current.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}
