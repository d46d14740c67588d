package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/tracker/internal/storage"
	"github.com/Veraticus/tracker/internal/tui"
	"github.com/Veraticus/tracker/internal/tui/themes"
)

func browseCmd(a *app) *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse transactions and summaries full-screen",
		Long: `Open a read-only full-screen view with one tab for the transaction list
and one for each summary. Tab and Shift+Tab switch views, r reloads, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext(cmd)
			defer stop()

			return a.withStorage(ctx, func(store *storage.SQLiteStorage) error {
				return tui.Run(ctx, store, themes.ByName(theme))
			})
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "default", "Color theme (default, catppuccin)")

	return cmd
}
