package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/tracker/internal/common"
	"github.com/Veraticus/tracker/internal/config"
)

var version = "dev"

// app carries the configuration shared by every command of one root.
type app struct {
	v       *viper.Viper
	cfgFile string
	envFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "tracker",
		Short: "📒 Personal transaction tracker",
		Long: `tracker keeps a local ledger of categories and transactions and
summarizes them by date, month, year and category.

Run without a subcommand to open the interactive menu.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.initConfig,
		RunE:              a.runMenu,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/tracker/config.yaml)")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.String("db", "", "database path (default: ~/tracker.db)")
	flags.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.String("log-format", config.DefaultLogFormat, "log format (console, json)")

	_ = a.v.BindPFlag(config.KeyDatabasePath, flags.Lookup("db"))
	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))

	rootCmd.AddCommand(menuCmd(a))
	rootCmd.AddCommand(categoriesCmd(a))
	rootCmd.AddCommand(transactionsCmd(a))
	rootCmd.AddCommand(summaryCmd(a))
	rootCmd.AddCommand(importOFXCmd(a))
	rootCmd.AddCommand(exportCmd(a))
	rootCmd.AddCommand(browseCmd(a))
	rootCmd.AddCommand(checkpointCmd(a))
	rootCmd.AddCommand(migrateCmd(a))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) initConfig(_ *cobra.Command, _ []string) error {
	// A missing .env file is normal; a malformed one is not.
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", a.envFile, err)
		}
	}

	if a.cfgFile != "" {
		a.v.SetConfigFile(config.ExpandPath(a.cfgFile))
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		a.v.AddConfigPath(filepath.Join(home, ".config", "tracker"))
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}

	config.SetDefaults(a.v)

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := common.SetupLogger(a.v.GetString(config.KeyLogLevel), a.v.GetString(config.KeyLogFormat)); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "tracker", version)
		},
	}
}
