package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			// id aliases the rowid; AUTOINCREMENT keeps ids from being reused.
			queries := []string{
				`CREATE TABLE IF NOT EXISTS category (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL DEFAULT '',
					description TEXT NOT NULL DEFAULT ''
				)`,
				`CREATE TABLE IF NOT EXISTS "transaction" (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					amount INTEGER NOT NULL,
					category TEXT NOT NULL DEFAULT '',
					date INTEGER NOT NULL,
					description TEXT NOT NULL DEFAULT ''
				)`,
			}
			return execAll(tx, queries)
		},
	},
	{
		Version:     2,
		Description: "Index summary grouping columns",
		Up: func(tx *sql.Tx) error {
			return execAll(tx, []string{
				`CREATE INDEX IF NOT EXISTS idx_transaction_date ON "transaction"(date)`,
				`CREATE INDEX IF NOT EXISTS idx_transaction_category ON "transaction"(category)`,
			})
		},
	},
}

func execAll(tx *sql.Tx, queries []string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query '%s': %w", query, err)
		}
	}
	return nil
}

// SchemaVersion returns the schema version recorded in the database.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	if currentVersion > ExpectedSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", currentVersion, ExpectedSchemaVersion)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
