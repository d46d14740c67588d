package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tracker/internal/cli"
	"github.com/Veraticus/tracker/internal/common"
	"github.com/Veraticus/tracker/internal/config"
	"github.com/Veraticus/tracker/internal/export"
	"github.com/Veraticus/tracker/internal/service"
	"github.com/Veraticus/tracker/internal/sheets"
	"github.com/Veraticus/tracker/internal/storage"
)

func exportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions and summaries",
		Long: `Export the transaction list together with the date, month, year and
category summaries, either as CSV files or to a Google spreadsheet.`,
	}

	cmd.AddCommand(exportCSVCmd(a))
	cmd.AddCommand(exportSheetsCmd(a))

	return cmd
}

// loadReport snapshots the store for an exporter.
func (a *app) loadReport(cmd *cobra.Command) (*service.Report, error) {
	var report *service.Report
	err := a.withStorage(cmd.Context(), func(store *storage.SQLiteStorage) error {
		var err error
		report, err = service.LoadReport(cmd.Context(), store)
		return err
	})
	return report, err
}

func exportCSVCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "csv <dir>",
		Short: "Write transactions.csv and one CSV per summary into dir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.loadReport(cmd)
			if err != nil {
				return err
			}

			paths, err := export.CSVDir(config.ExpandPath(args[0]), report)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range paths {
				fmt.Fprintln(out, cli.FormatSuccess("wrote "+path))
			}
			return nil
		},
	}
}

func exportSheetsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Push transactions and summaries to a Google spreadsheet",
		Long: `Push transactions and summaries to a Google spreadsheet, one tab per view.

Credentials come from the sheets.* config keys or GOOGLE_SHEETS_* environment
variables: either a service account key file, or an OAuth client plus a
refresh token obtained with "tracker export sheets auth".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadSheetsConfig(a.v)
			if err != nil {
				return common.NewUserError("Google Sheets is not configured; set sheets.* keys or GOOGLE_SHEETS_* variables", err)
			}

			report, err := a.loadReport(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd)
			defer stop()

			writer, err := sheets.NewWriter(ctx, *cfg, slog.Default())
			if err != nil {
				return err
			}

			id, err := writer.Write(ctx, report)
			if err != nil {
				return fmt.Errorf("failed to export to sheets: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
				fmt.Sprintf("exported %d transactions to https://docs.google.com/spreadsheets/d/%s", len(report.Transactions), id)))
			return nil
		},
	}

	cmd.AddCommand(sheetsAuthCmd(a))

	return cmd
}

func sheetsAuthCmd(a *app) *cobra.Command {
	var tokenFile, callback string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize Google Sheets access in the browser",
		Long: `Run the OAuth consent flow for the configured client and print the
refresh token to store as sheets.refresh_token.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clientID := config.FirstNonEmpty(a.v.GetString("sheets.client_id"), os.Getenv("GOOGLE_SHEETS_CLIENT_ID"))
			clientSecret := config.FirstNonEmpty(a.v.GetString("sheets.client_secret"), os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET"))

			ctx, stop := signalContext(cmd)
			defer stop()

			out := cmd.OutOrStdout()
			token, err := sheets.AuthenticateOAuth2Interactive(ctx, sheets.OAuth2Config{
				ClientID:     clientID,
				ClientSecret: clientSecret,
				TokenFile:    config.ExpandPath(tokenFile),
				CallbackAddr: callback,
				Timeout:      timeout,
			}, out)
			if err != nil {
				return fmt.Errorf("authorization failed: %w", err)
			}

			fmt.Fprintln(out, cli.FormatSuccess("authorized"))
			if token.RefreshToken != "" {
				fmt.Fprintln(out, cli.RenderBox("sheets.refresh_token", token.RefreshToken))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tokenFile, "token-file", "", "Also save the full token to this file")
	cmd.Flags().StringVar(&callback, "callback", "localhost:8080", "Address for the local OAuth callback server")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "How long to wait for consent")

	return cmd
}
