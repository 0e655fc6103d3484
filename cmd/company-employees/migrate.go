package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/technopolitica/company-employees/internal/db"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	var version string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if cfg.Database.URL == "" {
				return fmt.Errorf("missing required --db-url")
			}
			target, err := db.ParseMigrationTarget(version)
			if err != nil {
				return err
			}
			logger.Info().Stringer("to", target).Msg("running migrations")
			from, to, err := db.Migrate(cmd.Context(), cfg.Database.URL, target)
			if err != nil {
				return fmt.Errorf("failed to run migration: %w", err)
			}
			logger.Info().Int64("from", from).Int64("to", to).Msg("migrations complete")
			return nil
		},
	}
	cmd.Flags().StringVar(&version, "to", "latest", "version to which the database should be migrated. May specify \"latest\" to migrate to the latest version.")
	return cmd
}
