package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyDatabasePath   = "database.path"
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
	KeyImportCategory = "import.category"
)

// Default values used when neither the config file nor the environment sets a key.
const (
	DefaultDatabasePath   = "~/tracker.db"
	DefaultLogLevel       = "warn"
	DefaultLogFormat      = "console"
	DefaultImportCategory = "uncategorized"
	EnvPrefix             = "TRACKER"
)

// SetDefaults registers defaults and environment binding on v.
// Keys map to TRACKER_ variables with dots replaced by underscores,
// so database.path is read from TRACKER_DATABASE_PATH.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
	v.SetDefault(KeyImportCategory, DefaultImportCategory)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// DatabasePath returns the expanded database path from v.
func DatabasePath(v *viper.Viper) string {
	path := v.GetString(KeyDatabasePath)
	if path == "" {
		path = DefaultDatabasePath
	}
	return ExpandPath(path)
}
