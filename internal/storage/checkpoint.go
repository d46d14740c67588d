package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// CheckpointManager handles point-in-time copies of the database file.
type CheckpointManager struct {
	db             *sql.DB
	dbPath         string
	checkpointsDir string
}

// CheckpointMetadata is stored next to each checkpoint as <tag>.meta.json.
type CheckpointMetadata struct {
	CreatedAt     time.Time      `json:"created_at"`
	RowCounts     map[string]int `json:"row_counts"`
	ID            string         `json:"id"`
	Description   string         `json:"description"`
	FileSize      int64          `json:"file_size"`
	SchemaVersion int            `json:"schema_version"`
}

// CheckpointInfo represents information about a checkpoint for listing.
type CheckpointInfo struct {
	CreatedAt     time.Time
	ID            string
	Description   string
	FileSize      int64
	Categories    int
	Transactions  int
	SchemaVersion int
}

// Common errors.
var (
	ErrCheckpointNotFound  = errors.New("checkpoint not found")
	ErrCheckpointCorrupted = errors.New("checkpoint integrity check failed")
	ErrCheckpointExists    = errors.New("checkpoint already exists")
	ErrInvalidCheckpointID = errors.New("invalid checkpoint ID: cannot contain path separators or quotes")
)

// NewCheckpointManager creates a checkpoint manager that stores copies in
// a checkpoints directory next to dbPath.
func NewCheckpointManager(db *sql.DB, dbPath string) (*CheckpointManager, error) {
	absPath, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}

	checkpointsDir := filepath.Join(filepath.Dir(absPath), "checkpoints")
	if err := os.MkdirAll(checkpointsDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create checkpoints directory: %w", err)
	}

	return &CheckpointManager{
		db:             db,
		dbPath:         absPath,
		checkpointsDir: checkpointsDir,
	}, nil
}

func validateCheckpointID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\'";`) || strings.Contains(id, "..") {
		return ErrInvalidCheckpointID
	}
	return nil
}

func (cm *CheckpointManager) paths(id string) (string, string) {
	return filepath.Join(cm.checkpointsDir, id+".db"),
		filepath.Join(cm.checkpointsDir, id+".meta.json")
}

// Create writes a consistent copy of the database under tag.
// An empty tag is replaced by a timestamped one.
func (cm *CheckpointManager) Create(ctx context.Context, tag, description string) (*CheckpointInfo, error) {
	if tag == "" {
		tag = fmt.Sprintf("checkpoint-%s", time.Now().Format("2006-01-02-150405"))
	}
	if err := validateCheckpointID(tag); err != nil {
		return nil, err
	}

	checkpointPath, metadataPath := cm.paths(tag)
	if _, err := os.Stat(checkpointPath); err == nil {
		return nil, ErrCheckpointExists
	}

	var schemaVersion int
	if err := cm.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&schemaVersion); err != nil {
		return nil, fmt.Errorf("failed to get schema version: %w", err)
	}

	rowCounts, err := cm.collectRowCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect row counts: %w", err)
	}

	// VACUUM INTO produces a transactionally consistent copy even in WAL mode.
	if _, err := cm.db.ExecContext(ctx, "VACUUM INTO ?", checkpointPath); err != nil {
		return nil, fmt.Errorf("failed to backup database: %w", err)
	}

	stat, err := os.Stat(checkpointPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat checkpoint: %w", err)
	}

	metadata := CheckpointMetadata{
		ID:            tag,
		CreatedAt:     time.Now(),
		Description:   description,
		FileSize:      stat.Size(),
		RowCounts:     rowCounts,
		SchemaVersion: schemaVersion,
	}

	if err := saveMetadata(metadataPath, metadata); err != nil {
		if rmErr := os.Remove(checkpointPath); rmErr != nil {
			slog.Error("failed to remove checkpoint file after metadata save failure", "error", rmErr)
		}
		return nil, fmt.Errorf("failed to save metadata: %w", err)
	}

	slog.Info("created checkpoint", "id", tag, "size", metadata.FileSize)
	info := metadata.info()
	return &info, nil
}

// List returns all checkpoints, newest first.
func (cm *CheckpointManager) List(_ context.Context) ([]CheckpointInfo, error) {
	entries, err := os.ReadDir(cm.checkpointsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoints directory: %w", err)
	}

	checkpoints := make([]CheckpointInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".meta.json") {
			continue
		}

		metadata, err := loadMetadata(filepath.Join(cm.checkpointsDir, entry.Name()))
		if err != nil {
			slog.Warn("skipping unreadable checkpoint metadata", "file", entry.Name(), "error", err)
			continue
		}
		checkpoints = append(checkpoints, metadata.info())
	}

	sort.Slice(checkpoints, func(i, j int) bool {
		return checkpoints[i].CreatedAt.After(checkpoints[j].CreatedAt)
	})

	return checkpoints, nil
}

// Restore replaces the live database with the checkpoint tagged id.
// The manager's connection is closed; callers must reopen the storage afterwards.
func (cm *CheckpointManager) Restore(_ context.Context, id string) error {
	if err := validateCheckpointID(id); err != nil {
		return err
	}

	checkpointPath, _ := cm.paths(id)
	if _, err := os.Stat(checkpointPath); err != nil {
		if os.IsNotExist(err) {
			return ErrCheckpointNotFound
		}
		return fmt.Errorf("failed to access checkpoint: %w", err)
	}

	if err := verifyIntegrity(checkpointPath); err != nil {
		return fmt.Errorf("%w: %w", ErrCheckpointCorrupted, err)
	}

	if err := cm.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	backupPath := cm.dbPath + ".restore-backup"
	if err := copyFile(cm.dbPath, backupPath); err != nil {
		return fmt.Errorf("failed to backup current database: %w", err)
	}

	if err := copyFile(checkpointPath, cm.dbPath); err != nil {
		if restoreErr := copyFile(backupPath, cm.dbPath); restoreErr != nil {
			slog.Error("failed to restore backup after checkpoint restore failure", "error", restoreErr)
		}
		return fmt.Errorf("failed to restore checkpoint: %w", err)
	}

	// Stale WAL files belong to the replaced database.
	for _, suffix := range []string{"-wal", "-shm", ".restore-backup"} {
		if err := os.Remove(cm.dbPath + suffix); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove file after restore", "file", cm.dbPath+suffix, "error", err)
		}
	}

	slog.Info("restored checkpoint", "id", id)
	return nil
}

// Delete removes a checkpoint and its metadata.
func (cm *CheckpointManager) Delete(_ context.Context, id string) error {
	if err := validateCheckpointID(id); err != nil {
		return err
	}

	checkpointPath, metadataPath := cm.paths(id)
	if err := os.Remove(checkpointPath); err != nil {
		if os.IsNotExist(err) {
			return ErrCheckpointNotFound
		}
		return fmt.Errorf("failed to remove checkpoint file: %w", err)
	}

	if err := os.Remove(metadataPath); err != nil {
		slog.Debug("failed to remove metadata file", "error", err, "path", metadataPath)
	}

	return nil
}

func (m CheckpointMetadata) info() CheckpointInfo {
	return CheckpointInfo{
		ID:            m.ID,
		CreatedAt:     m.CreatedAt,
		Description:   m.Description,
		FileSize:      m.FileSize,
		Categories:    m.RowCounts["category"],
		Transactions:  m.RowCounts["transaction"],
		SchemaVersion: m.SchemaVersion,
	}
}

func (cm *CheckpointManager) collectRowCounts(ctx context.Context) (map[string]int, error) {
	tableQueries := map[string]string{
		"category":    `SELECT COUNT(*) FROM category`,
		"transaction": `SELECT COUNT(*) FROM "transaction"`,
	}

	counts := make(map[string]int, len(tableQueries))
	for table, query := range tableQueries {
		var count int
		if err := cm.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return nil, fmt.Errorf("failed to count %s rows: %w", table, err)
		}
		counts[table] = count
	}
	return counts, nil
}

func copyFile(src, dst string) error {
	source, err := os.Open(filepath.Clean(src))
	if err != nil {
		return err
	}
	defer func() { _ = source.Close() }()

	tmpDst := dst + ".tmp"
	destination, err := os.Create(filepath.Clean(tmpDst))
	if err != nil {
		return err
	}

	if _, err := io.Copy(destination, source); err != nil {
		_ = destination.Close()
		_ = os.Remove(tmpDst)
		return err
	}

	if err := destination.Close(); err != nil {
		_ = os.Remove(tmpDst)
		return err
	}

	return os.Rename(tmpDst, dst)
}

func saveMetadata(path string, metadata CheckpointMetadata) error {
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

func loadMetadata(path string) (*CheckpointMetadata, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var metadata CheckpointMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, err
	}
	return &metadata, nil
}

func verifyIntegrity(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var result string
	if err := db.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return err
	}
	if result != "ok" {
		return fmt.Errorf("integrity check failed: %s", result)
	}
	return nil
}
