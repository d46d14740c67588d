package config

import (
	"os"

	"github.com/Veraticus/tracker/internal/sheets"
	"github.com/spf13/viper"
)

// LoadSheetsConfig loads Google Sheets configuration.
// It follows this precedence:
// 1. Viper configuration (config file or TRACKER_SHEETS_* env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
// 3. Default values
func LoadSheetsConfig(v *viper.Viper) (*sheets.Config, error) {
	cfg := sheets.DefaultConfig()

	cfg.ServiceAccountPath = FirstNonEmpty(
		ExpandPath(v.GetString("sheets.service_account_path")),
		ExpandPath(os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH")),
	)
	cfg.ClientID = FirstNonEmpty(v.GetString("sheets.client_id"), os.Getenv("GOOGLE_SHEETS_CLIENT_ID"))
	cfg.ClientSecret = FirstNonEmpty(v.GetString("sheets.client_secret"), os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET"))
	cfg.RefreshToken = FirstNonEmpty(v.GetString("sheets.refresh_token"), os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN"))
	cfg.SpreadsheetID = FirstNonEmpty(v.GetString("sheets.spreadsheet_id"), os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"))
	cfg.SpreadsheetName = FirstNonEmpty(
		v.GetString("sheets.spreadsheet_name"),
		os.Getenv("GOOGLE_SHEETS_SPREADSHEET_NAME"),
		cfg.SpreadsheetName,
	)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FirstNonEmpty returns the first non-empty value.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
