package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"hotelbooking/internal/repository"
	"hotelbooking/internal/tasks"
)

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Run today's check-in scan once",
	Long: `List bookings that start today and log a reminder for each guest.
Live websocket delivery only happens inside the API process.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		repos := repository.NewManager(db)
		notices, err := tasks.NewCheckinJob(repos.Bookings, nil, log).Run(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d guests check in today\n", len(notices))
		return nil
	},
}
