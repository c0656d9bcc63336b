package repository

import (
	"context"

	"gorm.io/gorm"
)

// Manager groups the repositories that share one connection or transaction.
type Manager struct {
	db *gorm.DB

	Hotels         *HotelRepository
	Rooms          *RoomRepository
	Facilities     *FacilityRepository
	RoomFacilities *RoomFacilityRepository
	Users          *UserRepository
	Bookings       *BookingRepository
	Images         *ImageRepository
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{
		db:             db,
		Hotels:         NewHotelRepository(db),
		Rooms:          NewRoomRepository(db),
		Facilities:     NewFacilityRepository(db),
		RoomFacilities: NewRoomFacilityRepository(db),
		Users:          NewUserRepository(db),
		Bookings:       NewBookingRepository(db),
		Images:         NewImageRepository(db),
	}
}

// Transaction runs fn against repositories bound to a single transaction.
// fn's error rolls everything back; nil commits.
func (m *Manager) Transaction(ctx context.Context, fn func(tx *Manager) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewManager(tx))
	})
}

func (m *Manager) DB() *gorm.DB { return m.db }
