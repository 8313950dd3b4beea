package main

import (
	"github.com/spf13/cobra"

	"sharescribe/internal/config"
	"sharescribe/internal/database"
	"sharescribe/internal/database/migration"
	"sharescribe/internal/logger"
)

// migrateCmd applies pending schema migrations and exits.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		log := logger.New(cfg.LogLevel, cfg.Location())
		defer func() { _ = log.Sync() }()

		db, err := database.NewPostgres(cmd.Context(), cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		return migration.EnsureMigrated(cmd.Context(), db, log, cfg.Database.Host)
	},
}
