package repository

import (
	"context"
	"time"

	"hotelbooking/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID       int64     `gorm:"column:id;primaryKey"`
	UserID   int64     `gorm:"column:user_id;not null;index"`
	RoomID   int64     `gorm:"column:room_id;not null;index"`
	DateFrom time.Time `gorm:"column:date_from;type:date;not null"`
	DateTo   time.Time `gorm:"column:date_to;type:date;not null"`
	Price    int       `gorm:"column:price;not null"`

	User *userModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Room *roomModel `gorm:"foreignKey:RoomID;constraint:OnDelete:RESTRICT"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:       m.ID,
		UserID:   m.UserID,
		RoomID:   m.RoomID,
		DateFrom: domain.DateOf(m.DateFrom),
		DateTo:   domain.DateOf(m.DateTo),
		Price:    m.Price,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:       b.ID,
		UserID:   b.UserID,
		RoomID:   b.RoomID,
		DateFrom: b.DateFrom.Time,
		DateTo:   b.DateTo.Time,
		Price:    b.Price,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, notFound(tx.Error)
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

// CountOverlapping counts the room's bookings that intersect [from, to).
func (r *BookingRepository) CountOverlapping(ctx context.Context, roomID int64, from, to domain.Date) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("room_id = ? AND date_from < ? AND date_to > ?", roomID, to.Time, from.Time).
		Count(&n).Error
	return n, err
}

func (r *BookingRepository) CountByRoom(ctx context.Context, roomID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).Where("room_id = ?", roomID).Count(&n).Error
	return n, err
}

// ListCheckins returns bookings starting on day together with the guest's email.
func (r *BookingRepository) ListCheckins(ctx context.Context, day domain.Date) ([]domain.CheckinNotice, error) {
	var rows []struct {
		BookingID int64
		UserID    int64
		Email     string
		RoomID    int64
		HotelID   int64
		DateFrom  time.Time
		DateTo    time.Time
	}
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select("bookings.id AS booking_id, bookings.user_id, users.email, bookings.room_id, rooms.hotel_id, bookings.date_from, bookings.date_to").
		Joins("JOIN users ON users.id = bookings.user_id").
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Where("bookings.date_from = ?", day.Time).
		Order("bookings.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.CheckinNotice, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.CheckinNotice{
			BookingID: row.BookingID,
			UserID:    row.UserID,
			Email:     row.Email,
			RoomID:    row.RoomID,
			HotelID:   row.HotelID,
			DateFrom:  domain.DateOf(row.DateFrom),
			DateTo:    domain.DateOf(row.DateTo),
		})
	}
	return out, nil
}

func (r *BookingRepository) find(q *gorm.DB) ([]domain.Booking, error) {
	var rows []bookingModel
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}
