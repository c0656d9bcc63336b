package repository

import (
	"hotelbooking/internal/domain"

	"gorm.io/gorm"
)

// bookedCountQuery counts bookings per room that overlap [from, to).
func bookedCountQuery(db *gorm.DB, from, to domain.Date) *gorm.DB {
	return db.Model(&bookingModel{}).
		Select("room_id, COUNT(*) AS rooms_booked").
		Where("date_from < ? AND date_to > ?", to.Time, from.Time).
		Group("room_id")
}

// freeRoomsQuery selects rooms that still have at least one unit free in [from, to).
func freeRoomsQuery(db *gorm.DB, from, to domain.Date) *gorm.DB {
	return db.Model(&roomModel{}).
		Joins("LEFT JOIN (?) AS rooms_count ON rooms_count.room_id = rooms.id", bookedCountQuery(db, from, to)).
		Where("rooms.quantity - COALESCE(rooms_count.rooms_booked, 0) > 0")
}
