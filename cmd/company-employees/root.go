package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/technopolitica/company-employees/internal/config"
	"github.com/technopolitica/company-employees/internal/logging"
)

type rootOptions struct {
	configPath string
	dbURL      string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	var opts rootOptions
	cmd := &cobra.Command{
		Use:           "company-employees",
		Short:         "Companies and employees HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.dbURL, "db-url", "", "URL-formatted connection string to the database server (defaults to $DB_URL). Currently only postgres:// URLs are supported.")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format (json or console)")

	cmd.AddCommand(newServeCmd(&opts))
	cmd.AddCommand(newMigrateCmd(&opts))
	return cmd
}

// load reads the config file and applies the persistent flags on top of it.
func (opts *rootOptions) load(cmd *cobra.Command) (cfg config.Config, logger zerolog.Logger, err error) {
	cfg, err = config.Load(opts.configPath)
	if err != nil {
		return
	}
	flags := cmd.Flags()
	if flags.Changed("db-url") {
		cfg.Database.URL = opts.dbURL
	} else if cfg.Database.URL == "" {
		cfg.Database.URL = os.Getenv("DB_URL")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = opts.logFormat
	}
	logger = logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	return
}
