package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhinavshiv7/portfolio/internal/config"
	"github.com/abhinavshiv7/portfolio/internal/logging"
)

var (
	v = config.NewViper()

	// cfg and logger are set up by PersistentPreRunE for every subcommand.
	cfg    *config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio site server",
	Long: `portfolio serves the personal portfolio site: server-rendered sections
with scroll reveal and parallax state, the projects carousel, and the
contact form pipeline (validate, store, confirm by email).

Configuration comes from the environment (a .env file is loaded when
present); flags override it.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("database-url", "", "database URL (sqlite://file.db or postgres://...)")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-format", "", "log format (console, json)")

	_ = v.BindPFlag(config.KeyDatabaseURL, pf.Lookup("database-url"))
	_ = v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))
	_ = v.BindPFlag(config.KeyLogFormat, pf.Lookup("log-format"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(contactCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.FromViper(v)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	l, err := logging.New(c.LogLevel, c.LogFormat, os.Stderr)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	cfg, logger = c, l
	return nil
}
