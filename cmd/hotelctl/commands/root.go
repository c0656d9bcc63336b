package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/pkg/logger"
)

var (
	// Global flags
	dbURL string
)

var rootCmd = &cobra.Command{
	Use:   "hotelctl",
	Short: "Operations CLI for the hotel booking service",
	Long: `hotelctl runs maintenance tasks against the hotel booking database.

Commands:
  migrate  - create or update the schema
  seed     - load hotels, rooms and facilities from a .json or .xlsx file
  checkin  - run today's check-in scan once`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database URL (defaults to DATABASE_URL)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(checkinCmd)
}

// bootstrap loads config, builds the logger and opens the database.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if dbURL != "" {
		cfg.DatabaseURL = dbURL
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}
