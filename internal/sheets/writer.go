package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Veraticus/tracker/internal/common"
	"github.com/Veraticus/tracker/internal/service"
)

// Tab is one worksheet of the exported report.
type Tab struct {
	Title string
	Rows  [][]any
}

// Writer pushes a service.Report into a Google spreadsheet, one tab per view.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return newWriter(srv, config, logger), nil
}

func newWriter(srv *sheets.Service, config Config, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		config:  config,
		service: srv,
		logger:  logger,
	}
}

// Write replaces the contents of every report tab and returns the spreadsheet ID.
func (w *Writer) Write(ctx context.Context, report *service.Report) (string, error) {
	tabs := BuildTabs(report)

	w.logger.Info("starting report export",
		"transactions", len(report.Transactions),
		"total", report.Total)

	spreadsheetID, sheetIDs, err := w.getOrCreateSpreadsheet(ctx, tabs)
	if err != nil {
		return "", fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	if err := w.ensureTabs(ctx, spreadsheetID, tabs, sheetIDs); err != nil {
		return "", fmt.Errorf("failed to create tabs: %w", err)
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	for _, tab := range tabs {
		err := common.WithRetry(ctx, func() error {
			if err := w.clearTab(ctx, spreadsheetID, tab.Title); err != nil {
				return classifyError(err)
			}
			return classifyError(w.writeTab(ctx, spreadsheetID, tab))
		}, retryOpts)
		if err != nil {
			return "", fmt.Errorf("failed to write %s: %w", tab.Title, err)
		}
	}

	if w.config.EnableFormatting {
		err := common.WithRetry(ctx, func() error {
			return classifyError(w.applyFormatting(ctx, spreadsheetID, tabs, sheetIDs))
		}, retryOpts)
		if err != nil {
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("report export completed",
		"spreadsheet_id", spreadsheetID,
		"tabs", len(tabs))

	return spreadsheetID, nil
}

// BuildTabs lays out the report as worksheets with a header row.
func BuildTabs(report *service.Report) []Tab {
	tables := report.Tables()
	tabs := make([]Tab, 0, len(tables))
	for _, table := range tables {
		rows := make([][]any, 0, len(table.Rows)+1)
		header := make([]any, 0, len(table.Header))
		for _, h := range table.Header {
			header = append(header, h)
		}
		rows = append(rows, header)
		rows = append(rows, table.Rows...)
		tabs = append(tabs, Tab{Title: table.Title, Rows: rows})
	}
	return tabs
}

// classifyError marks client errors as permanent and 429s as rate limits.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
	case apiErr.Code >= 400 && apiErr.Code < 500:
		return &common.RetryableError{Err: err, Retryable: false}
	default:
		return err
	}
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		client := oauthConfig(config.ClientID, config.ClientSecret, "")
		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}
		tokenSource = client.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// getOrCreateSpreadsheet returns the spreadsheet ID and the sheet IDs of its tabs by title.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context, tabs []Tab) (string, map[string]int64, error) {
	if w.config.SpreadsheetID != "" {
		existing, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", nil, fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return w.config.SpreadsheetID, sheetIDsByTitle(existing.Sheets), nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
	}
	for _, tab := range tabs {
		spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: tab.Title},
		})
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", nil, fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, sheetIDsByTitle(created.Sheets), nil
}

func sheetIDsByTitle(list []*sheets.Sheet) map[string]int64 {
	ids := make(map[string]int64, len(list))
	for _, sheet := range list {
		if sheet == nil || sheet.Properties == nil {
			continue
		}
		ids[sheet.Properties.Title] = sheet.Properties.SheetId
	}
	return ids
}

// ensureTabs adds any report tab the spreadsheet lacks and records its sheet ID.
func (w *Writer) ensureTabs(ctx context.Context, spreadsheetID string, tabs []Tab, sheetIDs map[string]int64) error {
	var requests []*sheets.Request
	for _, tab := range tabs {
		if _, ok := sheetIDs[tab.Title]; ok {
			continue
		}
		requests = append(requests, &sheets.Request{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: tab.Title},
			},
		})
	}

	if len(requests) == 0 {
		return nil
	}

	resp, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return err
	}

	for _, reply := range resp.Replies {
		if reply == nil || reply.AddSheet == nil || reply.AddSheet.Properties == nil {
			continue
		}
		props := reply.AddSheet.Properties
		sheetIDs[props.Title] = props.SheetId
	}

	w.logger.Debug("added tabs", "count", len(requests))
	return nil
}

func (w *Writer) clearTab(ctx context.Context, spreadsheetID, title string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, fmt.Sprintf("'%s'!A:Z", title), &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// writeTab writes the tab's rows in batches to stay under API limits.
// Cells are stored as given; labels such as "=1+1" or "0012" are not parsed.
func (w *Writer) writeTab(ctx context.Context, spreadsheetID string, tab Tab) error {
	for i := 0; i < len(tab.Rows); i += w.config.BatchSize {
		end := min(i+w.config.BatchSize, len(tab.Rows))

		batch := tab.Rows[i:end]
		rangeStr := fmt.Sprintf("'%s'!A%d", tab.Title, i+1)
		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, &sheets.ValueRange{Values: batch}).
			ValueInputOption("RAW").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "tab", tab.Title, "start_row", i+1, "rows", len(batch))
	}

	return nil
}

// applyFormatting bolds and freezes the header row of each report tab and sizes
// its columns. Other tabs in the spreadsheet are left alone.
func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, tabs []Tab, sheetIDs map[string]int64) error {
	requests := make([]*sheets.Request, 0, len(tabs)*3)
	for _, tab := range tabs {
		sheetID, ok := sheetIDs[tab.Title]
		if !ok {
			continue
		}
		requests = append(requests,
			&sheets.Request{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{
						SheetId:       sheetID,
						StartRowIndex: 0,
						EndRowIndex:   1,
					},
					Cell: &sheets.CellData{
						UserEnteredFormat: &sheets.CellFormat{
							TextFormat: &sheets.TextFormat{Bold: true},
						},
					},
					Fields: "userEnteredFormat.textFormat",
				},
			},
			&sheets.Request{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{
						SheetId: sheetID,
						GridProperties: &sheets.GridProperties{
							FrozenRowCount: 1,
						},
					},
					Fields: "gridProperties.frozenRowCount",
				},
			},
			&sheets.Request{
				AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
					Dimensions: &sheets.DimensionRange{
						SheetId:    sheetID,
						Dimension:  "COLUMNS",
						StartIndex: 0,
						EndIndex:   5,
					},
				},
			},
		)
	}

	if len(requests) == 0 {
		return nil
	}

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return err
}
