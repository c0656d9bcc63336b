package booking

import "hotelbooking/internal/domain"

type CreateBookingRequest struct {
	RoomID   int64  `json:"room_id" binding:"required,gt=0"`
	DateFrom string `json:"date_from" binding:"required,datetime=2006-01-02"`
	DateTo   string `json:"date_to" binding:"required,datetime=2006-01-02"`
}

// BookingResponse is a stored booking plus its derived cost.
type BookingResponse struct {
	domain.Booking
	Nights    int `json:"nights"`
	TotalCost int `json:"total_cost"`
}

func toResponse(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		Booking:   *b,
		Nights:    b.Nights(),
		TotalCost: b.TotalCost(),
	}
}
