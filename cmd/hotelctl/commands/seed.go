package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"hotelbooking/internal/repository"
	"hotelbooking/internal/seed"
)

var (
	// Seed flags
	seedFile    string
	seedMigrate bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load hotels, rooms and facilities from a file",
	Long: `Load catalogue data from a .json or .xlsx file. Existing rows are kept,
so the command can be re-run safely.

Examples:
  hotelctl seed --file catalog.json
  hotelctl seed --file catalog.xlsx --migrate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := seed.Load(seedFile)
		if err != nil {
			return err
		}

		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		if seedMigrate {
			if err := repository.AutoMigrate(db); err != nil {
				return err
			}
		}

		stats, err := seed.Apply(cmd.Context(), repository.NewManager(db), catalog, log)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created: %d facilities, %d hotels, %d rooms\n",
			stats.Facilities, stats.Hotels, stats.Rooms)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Seed file (.json or .xlsx)")
	seedCmd.Flags().BoolVar(&seedMigrate, "migrate", false, "Run migrations before seeding")
	_ = seedCmd.MarkFlagRequired("file")
}
