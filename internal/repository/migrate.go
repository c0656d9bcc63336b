package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&hotelModel{},
		&roomModel{},
		&facilityModel{},
		&roomFacilityModel{},
		&userModel{},
		&bookingModel{},
		&imageModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
