package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tracker/internal/cli"
	"github.com/Veraticus/tracker/internal/model"
	"github.com/Veraticus/tracker/internal/storage"
)

func summaryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Sum transaction amounts by date, month, year or category",
	}

	periods := []struct {
		key  string
		load func(*storage.SQLiteStorage, context.Context) ([]model.PeriodTotal, error)
	}{
		{"date", (*storage.SQLiteStorage).TotalsByDate},
		{"month", (*storage.SQLiteStorage).TotalsByMonth},
		{"year", (*storage.SQLiteStorage).TotalsByYear},
	}

	for _, p := range periods {
		p := p
		cmd.AddCommand(&cobra.Command{
			Use:   p.key,
			Short: "Sum amounts by " + p.key,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.withStorage(cmd.Context(), func(store *storage.SQLiteStorage) error {
					totals, err := p.load(store, cmd.Context())
					if err != nil {
						return err
					}
					cli.RenderPeriodTotals(cmd.OutOrStdout(), p.key, totals)
					return nil
				})
			},
		})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "category",
		Short: "Sum amounts by category label",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStorage(cmd.Context(), func(store *storage.SQLiteStorage) error {
				totals, err := store.TotalsByCategory(cmd.Context())
				if err != nil {
					return err
				}
				cli.RenderCategoryTotals(cmd.OutOrStdout(), totals)
				return nil
			})
		},
	})

	return cmd
}
