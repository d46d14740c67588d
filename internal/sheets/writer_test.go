package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Veraticus/tracker/internal/common"
	"github.com/Veraticus/tracker/internal/model"
	"github.com/Veraticus/tracker/internal/service"
	"github.com/Veraticus/tracker/internal/testutil"
)

// fakeSheets is an in-process stand-in for the Sheets REST API.
type fakeSheets struct {
	existing     []string
	updates      map[string][][]any
	inputOptions []string
	formatted    []int64
	cleared      []string
	batchUpdates int
	created      bool
	failUpdates  int
	mu           sync.Mutex
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.Path
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && path == "/v4/spreadsheets":
		var req sheets.Spreadsheet
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.created = true
		req.SpreadsheetId = "created-id"
		for i, sheet := range req.Sheets {
			sheet.Properties.SheetId = int64(i + 1)
		}
		_ = json.NewEncoder(w).Encode(req)

	case r.Method == http.MethodGet && strings.HasPrefix(path, "/v4/spreadsheets/"):
		resp := sheets.Spreadsheet{SpreadsheetId: "existing-id"}
		for i, title := range f.existing {
			resp.Sheets = append(resp.Sheets, &sheets.Sheet{
				Properties: &sheets.SheetProperties{SheetId: int64(i), Title: title},
			})
		}
		_ = json.NewEncoder(w).Encode(resp)

	case r.Method == http.MethodPost && strings.HasSuffix(path, ":batchUpdate"):
		var req sheets.BatchUpdateSpreadsheetRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.batchUpdates++
		resp := sheets.BatchUpdateSpreadsheetResponse{}
		for i, sub := range req.Requests {
			if sub.RepeatCell != nil && sub.RepeatCell.Range != nil {
				f.formatted = append(f.formatted, sub.RepeatCell.Range.SheetId)
			}
			reply := &sheets.Response{}
			if sub.AddSheet != nil {
				reply.AddSheet = &sheets.AddSheetResponse{
					Properties: &sheets.SheetProperties{SheetId: int64(100 + i), Title: sub.AddSheet.Properties.Title},
				}
			}
			resp.Replies = append(resp.Replies, reply)
		}
		_ = json.NewEncoder(w).Encode(resp)

	case r.Method == http.MethodPost && strings.HasSuffix(path, ":clear"):
		f.cleared = append(f.cleared, path)
		_, _ = w.Write([]byte(`{}`))

	case r.Method == http.MethodPut && strings.Contains(path, "/values/"):
		if f.failUpdates > 0 {
			f.failUpdates--
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":{"code":503,"message":"try later"}}`))
			return
		}
		var req sheets.ValueRange
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.inputOptions = append(f.inputOptions, r.URL.Query().Get("valueInputOption"))
		rangeStr := path[strings.Index(path, "/values/")+len("/values/"):]
		f.updates[rangeStr] = req.Values
		_, _ = w.Write([]byte(`{}`))

	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"unknown route"}}`))
	}
}

func newTestWriter(t *testing.T, fake *fakeSheets, cfg Config) *Writer {
	t.Helper()

	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	srv, err := sheets.NewService(context.Background(),
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)

	return newWriter(srv, cfg, nil)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.ServiceAccountPath = "/unused.json"
	cfg.RetryAttempts = 2
	cfg.RetryDelay = 0
	return cfg
}

func loadRentFoodReport(t *testing.T) *service.Report {
	t.Helper()
	db := testutil.SetupTestDB(t)
	db.SeedTransactions(testutil.RentFood()...)

	report, err := service.LoadReport(context.Background(), db.Storage)
	require.NoError(t, err)
	return report
}

func TestBuildTabs(t *testing.T) {
	tabs := BuildTabs(loadRentFoodReport(t))

	titles := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		titles = append(titles, tab.Title)
	}
	assert.Equal(t, []string{"Transactions", "By Date", "By Month", "By Year", "By Category"}, titles)

	assert.Len(t, tabs[0].Rows, 4)
	assert.Equal(t, []any{"item #", "amount", "category", "date", "description"}, tabs[0].Rows[0])
	assert.Equal(t, []any{int64(1), int64(100), "rent", 20230101, "jan rent"}, tabs[0].Rows[1])

	assert.Equal(t, [][]any{
		{"month", "amount"},
		{202301, int64(50)},
		{202302, int64(25)},
	}, tabs[2].Rows)

	assert.Equal(t, [][]any{
		{"category", "amount"},
		{"food", int64(-50)},
		{"rent", int64(125)},
	}, tabs[4].Rows)
}

func TestBuildTabsEmptyReport(t *testing.T) {
	tabs := BuildTabs(&service.Report{})

	require.Len(t, tabs, 5)
	for _, tab := range tabs {
		assert.Len(t, tab.Rows, 1, tab.Title)
	}
}

func TestWriter_WriteCreatesSpreadsheet(t *testing.T) {
	fake := &fakeSheets{updates: map[string][][]any{}}
	writer := newTestWriter(t, fake, testConfig())

	id, err := writer.Write(context.Background(), loadRentFoodReport(t))
	require.NoError(t, err)

	assert.Equal(t, "created-id", id)
	assert.True(t, fake.created)
	assert.Len(t, fake.cleared, 5)
	assert.Len(t, fake.updates, 5)
	assert.Equal(t, 1, fake.batchUpdates, "formatting only")

	rows, ok := fake.updates["'By Year'!A1"]
	require.True(t, ok, "updates: %v", fake.updates)
	assert.Equal(t, [][]any{{"year", "amount"}, {float64(2023), float64(75)}}, rows)
}

func TestWriter_WriteExistingSpreadsheetAddsMissingTabs(t *testing.T) {
	fake := &fakeSheets{
		existing: []string{"Transactions", "By Month"},
		updates:  map[string][][]any{},
	}
	cfg := testConfig()
	cfg.SpreadsheetID = "existing-id"
	cfg.EnableFormatting = false
	writer := newTestWriter(t, fake, cfg)

	id, err := writer.Write(context.Background(), loadRentFoodReport(t))
	require.NoError(t, err)

	assert.Equal(t, "existing-id", id)
	assert.False(t, fake.created)
	assert.Equal(t, 1, fake.batchUpdates, "one AddSheet batch")
	assert.Len(t, fake.updates, 5)
}

func TestWriter_WriteStoresTextVerbatim(t *testing.T) {
	db := testutil.SetupTestDB(t)
	db.SeedTransactions(model.Transaction{Amount: 7, Category: "=1+1", Date: 20240101, Description: "0012"})
	report, err := service.LoadReport(context.Background(), db.Storage)
	require.NoError(t, err)

	fake := &fakeSheets{updates: map[string][][]any{}}
	cfg := testConfig()
	cfg.EnableFormatting = false
	writer := newTestWriter(t, fake, cfg)

	_, err = writer.Write(context.Background(), report)
	require.NoError(t, err)

	require.NotEmpty(t, fake.inputOptions)
	for _, opt := range fake.inputOptions {
		assert.Equal(t, "RAW", opt)
	}

	rows := fake.updates["'Transactions'!A1"]
	require.Len(t, rows, 2)
	assert.Equal(t, "=1+1", rows[1][2])
	assert.Equal(t, "0012", rows[1][4])
}

func TestWriter_FormattingSkipsForeignTabs(t *testing.T) {
	fake := &fakeSheets{
		existing: []string{"My Budget", "Transactions", "By Date", "By Month", "By Year", "By Category"},
		updates:  map[string][][]any{},
	}
	cfg := testConfig()
	cfg.SpreadsheetID = "existing-id"
	writer := newTestWriter(t, fake, cfg)

	_, err := writer.Write(context.Background(), loadRentFoodReport(t))
	require.NoError(t, err)

	assert.Equal(t, 1, fake.batchUpdates, "formatting only, no tabs added")
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, fake.formatted, "sheet 0 is the user's own tab")
	assert.NotContains(t, fake.cleared, "/v4/spreadsheets/existing-id/values/'My Budget'!A:Z:clear")
}

func TestWriter_WriteBatches(t *testing.T) {
	fake := &fakeSheets{updates: map[string][][]any{}}
	cfg := testConfig()
	cfg.BatchSize = 2
	cfg.EnableFormatting = false
	writer := newTestWriter(t, fake, cfg)

	_, err := writer.Write(context.Background(), loadRentFoodReport(t))
	require.NoError(t, err)

	assert.Len(t, fake.updates["'Transactions'!A1"], 2)
	assert.Len(t, fake.updates["'Transactions'!A3"], 2)
}

func TestWriter_WriteRetriesServerErrors(t *testing.T) {
	fake := &fakeSheets{updates: map[string][][]any{}, failUpdates: 1}
	cfg := testConfig()
	cfg.EnableFormatting = false
	writer := newTestWriter(t, fake, cfg)

	_, err := writer.Write(context.Background(), loadRentFoodReport(t))
	require.NoError(t, err)
	assert.Len(t, fake.updates, 5)
}

func TestClassifyError(t *testing.T) {
	assert.NoError(t, classifyError(nil))

	plain := errors.New("boom")
	assert.Equal(t, plain, classifyError(plain))

	rateLimited := classifyError(&googleapi.Error{Code: http.StatusTooManyRequests})
	assert.ErrorIs(t, rateLimited, common.ErrRateLimit)
	assert.True(t, common.IsRetryable(rateLimited))

	forbidden := classifyError(&googleapi.Error{Code: http.StatusForbidden})
	assert.False(t, common.IsRetryable(forbidden))

	var retryable *common.RetryableError
	require.ErrorAs(t, forbidden, &retryable)
	assert.False(t, retryable.Retryable)

	unavailable := &googleapi.Error{Code: http.StatusServiceUnavailable}
	assert.Equal(t, error(unavailable), classifyError(unavailable))
}
