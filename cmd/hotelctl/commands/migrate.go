package commands

import (
	"github.com/spf13/cobra"

	"hotelbooking/internal/repository"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		if err := repository.AutoMigrate(db); err != nil {
			return err
		}
		log.Info("schema is up to date")
		return nil
	},
}
