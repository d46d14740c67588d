package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tracker/internal/config"
	"github.com/Veraticus/tracker/internal/storage"
)

// initStorage opens the configured database and brings its schema up to date.
func (a *app) initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.DatabasePath(a.v)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Debug("storage ready", "path", dbPath)
	return store, nil
}

// withStorage runs fn against an open store and closes it afterwards.
func (a *app) withStorage(ctx context.Context, fn func(*storage.SQLiteStorage) error) error {
	store, err := a.initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			slog.Warn("failed to close database", "error", cerr)
		}
	}()

	return fn(store)
}

// signalContext cancels the command context on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", arg)
	}
	return id, nil
}

func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
