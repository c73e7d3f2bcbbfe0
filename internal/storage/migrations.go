package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version the application expects.
// If the database cannot be migrated to this version, that is fatal.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

// defaultCategories is seeded exactly once, and only while the categories
// table is still empty. Existing data is never cleared or duplicated.
var defaultCategories = []struct {
	Name string
	Kind string
}{
	{"Salary", "income"},
	{"Bonus", "income"},
	{"Side Income", "income"},
	{"Other Income", "income"},
	{"Food", "expense"},
	{"Transport", "expense"},
	{"Shopping", "expense"},
	{"Entertainment", "expense"},
	{"Medical", "expense"},
	{"Other Expense", "expense"},
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS categories (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT UNIQUE NOT NULL,
					type TEXT NOT NULL CHECK (type IN ('income', 'expense')),
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS transactions (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					date DATE NOT NULL,
					type TEXT NOT NULL CHECK (type IN ('income', 'expense')),
					category_id INTEGER NOT NULL REFERENCES categories(id),
					amount DECIMAL(10,2) NOT NULL CHECK (amount > 0),
					description TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date)`,
				`CREATE INDEX IF NOT EXISTS idx_transactions_type ON transactions(type)`,
				`CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Seed default categories",
		Up: func(tx *sql.Tx) error {
			var count int
			if err := tx.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
				return fmt.Errorf("failed to count categories: %w", err)
			}
			if count > 0 {
				// A populated table means the user already has data; never reseed.
				return nil
			}

			for _, cat := range defaultCategories {
				if _, err := tx.Exec(
					`INSERT INTO categories (name, type) VALUES (?, ?)`,
					cat.Name, cat.Kind,
				); err != nil {
					return fmt.Errorf("failed to seed category %q: %w", cat.Name, err)
				}
			}

			slog.Info("Seeded default categories", "count", len(defaultCategories))
			return nil
		},
	},
}

// Migrate applies all pending database migrations. It is idempotent: calling
// it on an already current database is a no-op.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("%w: reading schema version: %v", ErrInit, err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("%w: beginning migration transaction: %v", ErrInit, txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w: migration %d: %v", ErrInit, migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w: updating schema version: %v", ErrInit, execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("%w: committing migration %d: %v", ErrInit, migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("%w: verifying final schema version: %v", ErrInit, err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("%w: schema version mismatch: expected %d, got %d", ErrInit, ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
