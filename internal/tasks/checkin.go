package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"hotelbooking/internal/domain"
)

const EventCheckinToday = "checkin_today"

type CheckinLister interface {
	ListCheckins(ctx context.Context, day domain.Date) ([]domain.CheckinNotice, error)
}

// Notifier pushes an event to a user's live connections and reports how many got it.
type Notifier interface {
	SendToUser(userID int64, eventType string, payload any) int
}

// CheckinJob finds bookings that start today and tells their guests.
type CheckinJob struct {
	bookings CheckinLister
	notifier Notifier
	log      *zap.Logger
	today    func() domain.Date
}

func NewCheckinJob(bookings CheckinLister, notifier Notifier, log *zap.Logger) *CheckinJob {
	return &CheckinJob{
		bookings: bookings,
		notifier: notifier,
		log:      log.Named("checkin"),
		today:    domain.Today,
	}
}

func (j *CheckinJob) Handle(ctx context.Context, _ json.RawMessage) error {
	_, err := j.Run(ctx)
	return err
}

// Run scans today's check-ins and returns them.
func (j *CheckinJob) Run(ctx context.Context) ([]domain.CheckinNotice, error) {
	day := j.today()
	notices, err := j.bookings.ListCheckins(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("list check-ins for %s: %w", day, err)
	}

	for _, n := range notices {
		delivered := 0
		if j.notifier != nil {
			delivered = j.notifier.SendToUser(n.UserID, EventCheckinToday, n)
		}
		j.log.Info("guest checks in today",
			zap.Int64("booking_id", n.BookingID),
			zap.String("email", n.Email),
			zap.Int64("hotel_id", n.HotelID),
			zap.Int64("room_id", n.RoomID),
			zap.Int("ws_delivered", delivered),
		)
	}
	j.log.Info("check-in scan finished", zap.String("day", day.String()), zap.Int("bookings", len(notices)))
	return notices, nil
}
