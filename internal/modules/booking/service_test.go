package booking

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/apperr"
	"hotelbooking/internal/repository"
)

type fixture struct {
	svc  *Service
	m    *repository.Manager
	user *domain.User
	room *domain.Room
}

func setup(t *testing.T, quantity int) *fixture {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(fmt.Sprintf("file:booking_%s?mode=memory&cache=shared", name), database.Silent())
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	m := repository.NewManager(db)
	ctx := context.Background()

	hotel := &domain.Hotel{Title: "Sea Breeze", Location: "Sochi"}
	require.NoError(t, m.Hotels.Create(ctx, hotel))
	room := &domain.Room{HotelID: hotel.ID, Title: "Standard", Price: 3000, Quantity: quantity}
	require.NoError(t, m.Rooms.Create(ctx, room))
	user := &domain.User{Email: "guest@example.com", PasswordHash: "x"}
	require.NoError(t, m.Users.Create(ctx, user))

	svc := NewService(m)
	svc.today = func() domain.Date { return domain.NewDate(2030, 1, 1) }
	return &fixture{svc: svc, m: m, user: user, room: room}
}

func (f *fixture) book(from, to string) (*BookingResponse, error) {
	return f.svc.CreateBooking(context.Background(), f.user.ID, CreateBookingRequest{
		RoomID: f.room.ID, DateFrom: from, DateTo: to,
	})
}

func TestCreateBooking_PriceAndTotal(t *testing.T) {
	f := setup(t, 1)

	b, err := f.book("2030-01-10", "2030-01-13")
	require.NoError(t, err)
	assert.NotZero(t, b.ID)
	assert.Equal(t, 3000, b.Price)
	assert.Equal(t, 3, b.Nights)
	assert.Equal(t, 9000, b.TotalCost)
	assert.Equal(t, f.user.ID, b.UserID)
}

func TestCreateBooking_FiveThenConflict(t *testing.T) {
	f := setup(t, 5)

	for i := 0; i < 5; i++ {
		_, err := f.book("2030-02-01", "2030-02-05")
		require.NoError(t, err, "booking %d", i+1)
	}

	_, err := f.book("2030-02-03", "2030-02-04")
	assert.ErrorIs(t, err, apperr.ErrAllRoomsBooked)

	// adjacent range does not overlap
	_, err = f.book("2030-02-05", "2030-02-07")
	assert.NoError(t, err)
}

func TestCreateBooking_DateRules(t *testing.T) {
	f := setup(t, 1)

	cases := []struct {
		from, to string
		want     *apperr.Error
	}{
		{"2029-12-31", "2030-01-03", apperr.ErrPastDate},
		{"2030-01-05", "2029-12-30", apperr.ErrPastDate},
		{"2030-01-05", "2030-01-05", apperr.ErrInvalidDateRange},
		{"2030-01-06", "2030-01-05", apperr.ErrInvalidDateRange},
	}
	for _, tc := range cases {
		_, err := f.book(tc.from, tc.to)
		assert.ErrorIs(t, err, tc.want, "%s..%s", tc.from, tc.to)
	}

	// today is allowed
	_, err := f.book("2030-01-01", "2030-01-02")
	assert.NoError(t, err)
}

func TestCreateBooking_UnknownRoom(t *testing.T) {
	f := setup(t, 1)

	_, err := f.svc.CreateBooking(context.Background(), f.user.ID, CreateBookingRequest{
		RoomID: 999, DateFrom: "2030-01-10", DateTo: "2030-01-11",
	})
	assert.ErrorIs(t, err, apperr.ErrRoomNotFound)
}

func TestCreateBooking_ConcurrentNeverOverbooks(t *testing.T) {
	f := setup(t, 2)

	var wg sync.WaitGroup
	results := make(chan error, 6)
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.book("2030-03-01", "2030-03-03")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	ok := 0
	for err := range results {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, apperr.ErrAllRoomsBooked)
	}
	assert.Equal(t, 2, ok)
}

func TestListBookings(t *testing.T) {
	f := setup(t, 3)
	ctx := context.Background()

	other := &domain.User{Email: "other@example.com", PasswordHash: "x"}
	require.NoError(t, f.m.Users.Create(ctx, other))

	_, err := f.book("2030-01-10", "2030-01-12")
	require.NoError(t, err)
	_, err = f.svc.CreateBooking(ctx, other.ID, CreateBookingRequest{RoomID: f.room.ID, DateFrom: "2030-01-10", DateTo: "2030-01-11"})
	require.NoError(t, err)

	all, err := f.svc.ListBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := f.svc.ListUserBookings(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 6000, mine[0].TotalCost)
}
