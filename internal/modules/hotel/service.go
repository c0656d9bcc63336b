package hotel

import (
	"context"
	"errors"
	"fmt"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/apperr"
	"hotelbooking/internal/pkg/validator"
	"hotelbooking/internal/repository"
)

type Service struct {
	db *repository.Manager
}

func NewService(db *repository.Manager) *Service {
	return &Service{db: db}
}

func (s *Service) List(ctx context.Context, q ListHotelsQuery) ([]domain.Hotel, error) {
	from, to, err := validator.DateRange(q.DateFrom, q.DateTo)
	if err != nil {
		return nil, err
	}

	return s.db.Hotels.List(ctx, domain.HotelFilter{
		Title:    q.Title,
		Location: q.Location,
		DateFrom: from,
		DateTo:   to,
		Limit:    q.PerPage,
		Offset:   q.PerPage * (q.Page - 1),
	})
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Hotel, error) {
	h, err := s.db.Hotels.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return h, nil
}

func (s *Service) Create(ctx context.Context, req HotelRequest) (*domain.Hotel, error) {
	h := &domain.Hotel{Title: req.Title, Location: req.Location}

	err := s.db.Transaction(ctx, func(tx *repository.Manager) error {
		if err := ensureUnique(ctx, tx, h.Title, h.Location, 0); err != nil {
			return err
		}
		return tx.Hotels.Create(ctx, h)
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Update replaces both fields of an existing hotel.
func (s *Service) Update(ctx context.Context, id int64, req HotelRequest) error {
	return s.db.Transaction(ctx, func(tx *repository.Manager) error {
		if _, err := tx.Hotels.GetByID(ctx, id); err != nil {
			return mapNotFound(err)
		}
		if err := ensureUnique(ctx, tx, req.Title, req.Location, id); err != nil {
			return err
		}
		return mapNotFound(tx.Hotels.Update(ctx, &domain.Hotel{ID: id, Title: req.Title, Location: req.Location}))
	})
}

func (s *Service) Patch(ctx context.Context, id int64, req HotelPatchRequest) error {
	return s.db.Transaction(ctx, func(tx *repository.Manager) error {
		current, err := tx.Hotels.GetByID(ctx, id)
		if err != nil {
			return mapNotFound(err)
		}

		title, location := current.Title, current.Location
		if req.Title != nil {
			title = *req.Title
		}
		if req.Location != nil {
			location = *req.Location
		}
		if err := ensureUnique(ctx, tx, title, location, id); err != nil {
			return err
		}
		return tx.Hotels.Patch(ctx, id, domain.HotelPatch{Title: req.Title, Location: req.Location})
	})
}

// Delete refuses to remove a hotel that still has rooms.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.db.Transaction(ctx, func(tx *repository.Manager) error {
		if _, err := tx.Hotels.GetByID(ctx, id); err != nil {
			return mapNotFound(err)
		}
		rooms, err := tx.Rooms.CountByHotel(ctx, id)
		if err != nil {
			return fmt.Errorf("count rooms: %w", err)
		}
		if rooms > 0 {
			return apperr.ErrHotelHasRooms
		}
		if err := tx.Hotels.Delete(ctx, id); err != nil {
			if database.IsForeignKeyViolation(err) {
				return apperr.ErrHotelHasRooms
			}
			return mapNotFound(err)
		}
		return nil
	})
}

func ensureUnique(ctx context.Context, tx *repository.Manager, title, location string, exceptID int64) error {
	dup, err := tx.Hotels.FindDuplicate(ctx, title, location, exceptID)
	if err != nil {
		return fmt.Errorf("find duplicate hotel: %w", err)
	}
	if dup != nil {
		return apperr.ErrHotelExists
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.ErrHotelNotFound
	}
	return err
}
