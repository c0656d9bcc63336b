package domain

type Booking struct {
	ID       int64 `json:"id"`
	UserID   int64 `json:"user_id"`
	RoomID   int64 `json:"room_id"`
	DateFrom Date  `json:"date_from"`
	DateTo   Date  `json:"date_to"`
	Price    int   `json:"price"`
}

// Nights is the number of nights between check-in and check-out.
func (b *Booking) Nights() int {
	return b.DateFrom.DaysUntil(b.DateTo)
}

// TotalCost is the nightly price multiplied by the number of nights.
func (b *Booking) TotalCost() int {
	return b.Price * b.Nights()
}

// CheckinNotice is a booking that starts today joined with its guest.
type CheckinNotice struct {
	BookingID int64  `json:"booking_id"`
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	RoomID    int64  `json:"room_id"`
	HotelID   int64  `json:"hotel_id"`
	DateFrom  Date   `json:"date_from"`
	DateTo    Date   `json:"date_to"`
}
