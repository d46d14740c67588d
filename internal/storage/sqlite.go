package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/Veraticus/tracker/internal/service"
)

var (
	_ service.Storage     = (*SQLiteStorage)(nil)
	_ service.Snapshotter = (*SQLiteStorage)(nil)
)

// InMemory opens a private database that disappears when the storage is closed.
const InMemory = ":memory:"

// SQLiteStorage implements service.Storage using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	q      queryable
	dbPath string
}

// queryable is satisfied by both *sql.DB and *sql.Tx.
type queryable interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NewSQLiteStorage opens (or creates) the database at dbPath.
// Migrate must be called before the stores are used.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dsn := dbPath
	if dbPath != InMemory {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = dbPath + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps :memory: databases alive and serializes writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		q:      db,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Path returns the file the storage was opened on.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// ReadSnapshot runs fn with a view bound to a single read transaction, so the
// reads inside fn all see the same committed state. The transaction is always
// rolled back.
func (s *SQLiteStorage) ReadSnapshot(ctx context.Context, fn func(service.ReportReader) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin read snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	return fn(&SQLiteStorage{db: s.db, q: tx, dbPath: s.dbPath})
}

// NewCheckpointManager creates a checkpoint manager for this storage instance.
func (s *SQLiteStorage) NewCheckpointManager() (*CheckpointManager, error) {
	if s.dbPath == InMemory {
		return nil, fmt.Errorf("checkpoints are not supported for in-memory databases")
	}
	return NewCheckpointManager(s.db, s.dbPath)
}
