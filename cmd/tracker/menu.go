package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tracker/internal/cli"
	"github.com/Veraticus/tracker/internal/storage"
)

func menuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Open the interactive numbered menu",
		Long: `Print the numbered menu and read choices from standard input until
"0", end of input or Ctrl+C. This is also what tracker runs with no subcommand.`,
		Args: cobra.NoArgs,
		RunE: a.runMenu,
	}
}

func (a *app) runMenu(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	handler := cli.NewInterruptHandler(out)
	ctx = handler.HandleInterrupts(ctx)

	err := a.withStorage(ctx, func(store *storage.SQLiteStorage) error {
		return cli.NewMenu(store, store, cmd.InOrStdin(), out).Run(ctx)
	})
	if err != nil && handler.WasInterrupted() {
		// Ctrl+C is a normal way to leave the menu, even mid-query.
		slog.Debug("menu interrupted", "error", err)
		return nil
	}
	return err
}
