package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("TRACKER_TEST_DIR", "/srv/data")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "tilde only", in: "~", want: home},
		{name: "tilde prefix", in: "~/tracker.db", want: filepath.Join(home, "tracker.db")},
		{name: "env var", in: "$TRACKER_TEST_DIR/tracker.db", want: "/srv/data/tracker.db"},
		{name: "absolute", in: "/tmp/tracker.db", want: "/tmp/tracker.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	assert.Equal(t, DefaultLogLevel, v.GetString(KeyLogLevel))
	assert.Equal(t, DefaultImportCategory, v.GetString(KeyImportCategory))

	t.Setenv("TRACKER_DATABASE_PATH", "/tmp/from-env.db")
	assert.Equal(t, "/tmp/from-env.db", DatabasePath(v))
}

func TestLoadSheetsConfig(t *testing.T) {
	t.Run("viper values win over environment", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "env-client")
		v := viper.New()
		v.Set("sheets.client_id", "cfg-client")
		v.Set("sheets.client_secret", "secret")
		v.Set("sheets.refresh_token", "token")

		cfg, err := LoadSheetsConfig(v)
		require.NoError(t, err)
		assert.Equal(t, "cfg-client", cfg.ClientID)
		assert.Equal(t, "Tracker Report", cfg.SpreadsheetName)
	})

	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "/keys/sa.json")
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "Household")

		cfg, err := LoadSheetsConfig(viper.New())
		require.NoError(t, err)
		assert.Equal(t, "/keys/sa.json", cfg.ServiceAccountPath)
		assert.Equal(t, "Household", cfg.SpreadsheetName)
	})

	t.Run("missing credentials", func(t *testing.T) {
		for _, key := range []string{
			"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH",
			"GOOGLE_SHEETS_CLIENT_ID",
			"GOOGLE_SHEETS_CLIENT_SECRET",
			"GOOGLE_SHEETS_REFRESH_TOKEN",
		} {
			t.Setenv(key, "")
		}
		_, err := LoadSheetsConfig(viper.New())
		assert.Error(t, err)
	})
}
