package booking

import (
	"context"
	"errors"
	"fmt"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/apperr"
	"hotelbooking/internal/repository"
)

type Service struct {
	db    *repository.Manager
	today func() domain.Date
}

func NewService(db *repository.Manager) *Service {
	return &Service{db: db, today: domain.Today}
}

// CreateBooking reserves one unit of the room for [date_from, date_to) at the
// room's current price. The capacity check and insert share one transaction;
// on PostgreSQL the room row stays locked until commit.
func (s *Service) CreateBooking(ctx context.Context, userID int64, req CreateBookingRequest) (*BookingResponse, error) {
	from, to, err := s.validateDates(req.DateFrom, req.DateTo)
	if err != nil {
		return nil, err
	}

	var created *domain.Booking
	err = s.db.Transaction(ctx, func(tx *repository.Manager) error {
		room, err := tx.Rooms.GetForBooking(ctx, req.RoomID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperr.ErrRoomNotFound
			}
			return fmt.Errorf("load room: %w", err)
		}

		booked, err := tx.Bookings.CountOverlapping(ctx, room.ID, from, to)
		if err != nil {
			return fmt.Errorf("count overlapping: %w", err)
		}
		if booked >= int64(room.Quantity) {
			return apperr.ErrAllRoomsBooked
		}

		b := &domain.Booking{
			UserID:   userID,
			RoomID:   room.ID,
			DateFrom: from,
			DateTo:   to,
			Price:    room.Price,
		}
		if err := tx.Bookings.Create(ctx, b); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(created), nil
}

func (s *Service) ListBookings(ctx context.Context) ([]BookingResponse, error) {
	bookings, err := s.db.Bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(bookings), nil
}

func (s *Service) ListUserBookings(ctx context.Context, userID int64) ([]BookingResponse, error) {
	bookings, err := s.db.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toResponses(bookings), nil
}

func (s *Service) validateDates(rawFrom, rawTo string) (domain.Date, domain.Date, error) {
	from, err := domain.ParseDate(rawFrom)
	if err != nil {
		return domain.Date{}, domain.Date{}, apperr.ErrValidation.WithDetail("Неверный формат даты. Используйте YYYY-MM-DD")
	}
	to, err := domain.ParseDate(rawTo)
	if err != nil {
		return domain.Date{}, domain.Date{}, apperr.ErrValidation.WithDetail("Неверный формат даты. Используйте YYYY-MM-DD")
	}

	today := s.today()
	if from.Before(today) || to.Before(today) {
		return domain.Date{}, domain.Date{}, apperr.ErrPastDate
	}
	if !from.Before(to) {
		return domain.Date{}, domain.Date{}, apperr.ErrInvalidDateRange
	}
	if from.DaysUntil(to) < 1 {
		return domain.Date{}, domain.Date{}, apperr.ErrInvalidPeriod
	}
	return from, to, nil
}

func toResponses(bookings []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, *toResponse(&bookings[i]))
	}
	return out
}
