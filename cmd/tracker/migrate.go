package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tracker/internal/cli"
	"github.com/Veraticus/tracker/internal/config"
	"github.com/Veraticus/tracker/internal/storage"
)

func migrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Every other command migrates on open; this one is useful to check the
schema version or to prepare a database file ahead of time.`,
		Args: cobra.NoArgs,
		RunE: a.runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current schema version without applying changes")

	return cmd
}

func (a *app) runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")
	dbPath := config.DatabasePath(a.v)
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	current, err := store.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	if status {
		fmt.Fprintln(out, cli.FormatTitle("schema status"))
		fmt.Fprintf(out, "database: %s\ncurrent version: %d\nlatest version: %d\n",
			dbPath, current, storage.ExpectedSchemaVersion)
		if current < storage.ExpectedSchemaVersion {
			fmt.Fprintln(out, cli.FormatWarning("migrations pending"))
		}
		return nil
	}

	slog.Info("running database migrations", "database", dbPath, "from", current)
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("database at schema version %d", storage.ExpectedSchemaVersion)))
	return nil
}
