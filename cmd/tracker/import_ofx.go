package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/tracker/internal/cli"
	"github.com/Veraticus/tracker/internal/config"
	"github.com/Veraticus/tracker/internal/model"
	"github.com/Veraticus/tracker/internal/ofx"
	"github.com/Veraticus/tracker/internal/storage"
)

func importOFXCmd(a *app) *cobra.Command {
	var category string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import-ofx <files...>",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import statement transactions from OFX or QFX files exported by your bank.

Amounts are stored in cents. Without --category, interest, fee and ATM
transactions are labeled interest, fees and cash; everything else gets the
configured import.category.`,
		Example: `  # Import one file
  tracker import-ofx ~/Downloads/checking_jan.qfx

  # Import a whole directory under one label
  tracker import-ofx --category travel ~/Downloads/trip/*.ofx

  # Preview without saving
  tracker import-ofx --dry-run ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd)
			defer stop()

			parser := ofx.NewParser(ofx.Options{
				Category:        category,
				DefaultCategory: a.v.GetString(config.KeyImportCategory),
			})

			bar := progressbar.NewOptions(len(files),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionSetDescription("importing"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)

			var imported []model.Transaction
			var failed int
			for _, path := range files {
				txns, err := parseOFXFile(ctx, parser, path)
				if err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					slog.Error("failed to import file", "file", path, "error", err)
					failed++
				} else {
					slog.Info("parsed file", "file", filepath.Base(path), "transactions", len(txns))
					imported = append(imported, txns...)
				}
				_ = bar.Add(1)
			}
			_ = bar.Finish()

			out := cmd.OutOrStdout()
			if dryRun {
				cli.RenderTransactions(out, imported)
				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("dry run: %d transactions from %d files not saved", len(imported), len(files)-failed)))
				return nil
			}

			if len(imported) > 0 {
				err := a.withStorage(ctx, func(store *storage.SQLiteStorage) error {
					return store.SaveTransactions(ctx, imported)
				})
				if err != nil {
					return err
				}
			}

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("imported %d transactions from %d files", len(imported), len(files)-failed)))
			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be imported", failed, len(files))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Label every imported transaction with this category")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be imported without saving")

	return cmd
}

func parseOFXFile(ctx context.Context, parser *ofx.Parser, path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return parser.ParseFile(ctx, f)
}

// expandFiles resolves glob patterns; arguments that match nothing must name an existing file.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(config.ExpandPath(pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err != nil {
				return nil, fmt.Errorf("no files found matching %s", pattern)
			}
			matches = []string{pattern}
		}
		files = append(files, matches...)
	}
	return files, nil
}
