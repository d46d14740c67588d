package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tracker/internal/cli"
	"github.com/Veraticus/tracker/internal/model"
	"github.com/Veraticus/tracker/internal/storage"
)

func transactionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"txn", "tx"},
		Short:   "Manage transactions",
		Example: `  tracker transactions list
  tracker transactions add --amount 1200 --category rent --date 20240101 --description "jan rent"
  tracker transactions delete 3`,
	}

	cmd.AddCommand(listTransactionsCmd(a))
	cmd.AddCommand(addTransactionCmd(a))
	cmd.AddCommand(deleteTransactionCmd(a))

	return cmd
}

func listTransactionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStorage(cmd.Context(), func(store *storage.SQLiteStorage) error {
				transactions, err := store.GetTransactions(cmd.Context())
				if err != nil {
					return err
				}
				cli.RenderTransactions(cmd.OutOrStdout(), transactions)
				return nil
			})
		},
	}
}

func addTransactionCmd(a *app) *cobra.Command {
	var txn model.Transaction
	var date int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Long: `Record a transaction. Amounts are whole numbers in your smallest unit
(for example cents); the date is yyyymmdd and defaults to today.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			txn.Date = model.Date(date)
			if !cmd.Flags().Changed("date") {
				txn.Date = model.DateFromTime(time.Now())
			}

			return a.withStorage(cmd.Context(), func(store *storage.SQLiteStorage) error {
				saved, err := store.AddTransaction(cmd.Context(), txn)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(),
					cli.FormatSuccess(fmt.Sprintf("added transaction %d", saved.ID)))
				return nil
			})
		},
	}

	cmd.Flags().Int64VarP(&txn.Amount, "amount", "a", 0, "Amount as a whole number")
	cmd.Flags().StringVarP(&txn.Category, "category", "c", "", "Category label")
	cmd.Flags().IntVar(&date, "date", 0, "Date as yyyymmdd (default today)")
	cmd.Flags().StringVarP(&txn.Description, "description", "d", "", "Free-text description")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func deleteTransactionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return a.withStorage(cmd.Context(), func(store *storage.SQLiteStorage) error {
				if err := store.DeleteTransaction(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(),
					cli.FormatSuccess(fmt.Sprintf("deleted transaction %d", id)))
				return nil
			})
		},
	}
}
