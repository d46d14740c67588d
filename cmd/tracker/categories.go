package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tracker/internal/cli"
	"github.com/Veraticus/tracker/internal/storage"
)

func categoriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Manage categories",
		Example: `  tracker categories list
  tracker categories add rent --description "monthly rent"
  tracker categories update 1 --name housing`,
	}

	cmd.AddCommand(listCategoriesCmd(a))
	cmd.AddCommand(addCategoryCmd(a))
	cmd.AddCommand(updateCategoryCmd(a))

	return cmd
}

func listCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStorage(cmd.Context(), func(store *storage.SQLiteStorage) error {
				categories, err := store.GetCategories(cmd.Context())
				if err != nil {
					return err
				}
				cli.RenderCategories(cmd.OutOrStdout(), categories)
				return nil
			})
		},
	}
}

func addCategoryCmd(a *app) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStorage(cmd.Context(), func(store *storage.SQLiteStorage) error {
				category, err := store.CreateCategory(cmd.Context(), args[0], description)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(),
					cli.FormatSuccess(fmt.Sprintf("added category %d %s", category.ID, category.Name)))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Category description")

	return cmd
}

func updateCategoryCmd(a *app) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a category's name or description",
		Long: `Change a category's name or description. Flags that are not given keep
their current value. Transactions keep the label they were recorded with.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			return a.withStorage(ctx, func(store *storage.SQLiteStorage) error {
				current, err := store.GetCategoryByID(ctx, id)
				if err != nil {
					return err
				}

				if cmd.Flags().Changed("name") {
					current.Name = name
				}
				if cmd.Flags().Changed("description") {
					current.Description = description
				}

				if err := store.UpdateCategory(ctx, id, current.Name, current.Description); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(),
					cli.FormatSuccess(fmt.Sprintf("updated category %d %s", id, current.Name)))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "New category name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New category description")

	return cmd
}
