package room

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/apperr"
	"hotelbooking/internal/pkg/utils"
	"hotelbooking/internal/repository"
)

type Service struct {
	db *repository.Manager
}

func NewService(db *repository.Manager) *Service {
	return &Service{db: db}
}

func (s *Service) List(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	if err := hotelExists(ctx, s.db, hotelID); err != nil {
		return nil, err
	}
	return s.db.Rooms.ListByHotel(ctx, hotelID)
}

// ListAvailable returns rooms of the hotel with at least one unit free in [from, to).
func (s *Service) ListAvailable(ctx context.Context, hotelID int64, from, to domain.Date) ([]domain.RoomAvailability, error) {
	if err := hotelExists(ctx, s.db, hotelID); err != nil {
		return nil, err
	}
	return s.db.Rooms.ListAvailable(ctx, hotelID, from, to)
}

func (s *Service) Get(ctx context.Context, hotelID, roomID int64) (*domain.Room, error) {
	if err := hotelExists(ctx, s.db, hotelID); err != nil {
		return nil, err
	}
	room, err := s.db.Rooms.GetInHotel(ctx, hotelID, roomID)
	if err != nil {
		return nil, roomNotFound(err)
	}
	return room, nil
}

func (s *Service) Create(ctx context.Context, hotelID int64, req RoomRequest) (*domain.Room, error) {
	room := &domain.Room{
		HotelID:     hotelID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Price:       *req.Price,
		Quantity:    *req.Quantity,
	}
	facilityIDs := utils.UniqueIDs(req.FacilitiesIDs)

	var created *domain.Room
	err := s.db.Transaction(ctx, func(tx *repository.Manager) error {
		if err := hotelExists(ctx, tx, hotelID); err != nil {
			return err
		}
		if err := facilitiesExist(ctx, tx, facilityIDs); err != nil {
			return err
		}
		if err := ensureUnique(ctx, tx, room); err != nil {
			return err
		}
		if err := tx.Rooms.Create(ctx, room); err != nil {
			return fmt.Errorf("create room: %w", err)
		}
		if err := tx.RoomFacilities.Add(ctx, room.ID, facilityIDs); err != nil {
			return fmt.Errorf("link facilities: %w", err)
		}

		var err error
		created, err = tx.Rooms.GetInHotel(ctx, hotelID, room.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update replaces every field of the room and its whole facility set.
func (s *Service) Update(ctx context.Context, hotelID, roomID int64, req RoomRequest) error {
	facilityIDs := utils.UniqueIDs(req.FacilitiesIDs)

	return s.db.Transaction(ctx, func(tx *repository.Manager) error {
		if _, err := inHotel(ctx, tx, hotelID, roomID); err != nil {
			return err
		}
		if err := facilitiesExist(ctx, tx, facilityIDs); err != nil {
			return err
		}

		room := &domain.Room{
			ID:          roomID,
			HotelID:     hotelID,
			Title:       strings.TrimSpace(req.Title),
			Description: req.Description,
			Price:       *req.Price,
			Quantity:    *req.Quantity,
		}
		if err := ensureUnique(ctx, tx, room); err != nil {
			return err
		}
		if err := tx.Rooms.Update(ctx, room); err != nil {
			return fmt.Errorf("update room: %w", err)
		}
		return tx.RoomFacilities.Set(ctx, roomID, facilityIDs)
	})
}

func (s *Service) Patch(ctx context.Context, hotelID, roomID int64, req RoomPatchRequest) error {
	facilityIDs := utils.UniqueIDs(req.FacilitiesIDs)

	return s.db.Transaction(ctx, func(tx *repository.Manager) error {
		current, err := inHotel(ctx, tx, hotelID, roomID)
		if err != nil {
			return err
		}

		merged := *current
		if req.Title != nil {
			merged.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description.Set {
			merged.Description = req.Description.Value
		}
		if req.Price != nil {
			merged.Price = *req.Price
		}
		if req.Quantity != nil {
			merged.Quantity = *req.Quantity
		}
		if err := ensureUnique(ctx, tx, &merged); err != nil {
			return err
		}

		err = tx.Rooms.Patch(ctx, hotelID, roomID, domain.RoomPatch{
			Title:            req.Title,
			Description:      req.Description.Value,
			ClearDescription: req.Description.Set && req.Description.Value == nil,
			Price:            req.Price,
			Quantity:         req.Quantity,
		})
		if err != nil {
			return fmt.Errorf("patch room: %w", err)
		}

		if facilityIDs == nil {
			return nil
		}
		if err := facilitiesExist(ctx, tx, facilityIDs); err != nil {
			return err
		}
		return tx.RoomFacilities.Set(ctx, roomID, facilityIDs)
	})
}

// Delete removes the room with its facility links unless it has bookings.
func (s *Service) Delete(ctx context.Context, hotelID, roomID int64) error {
	return s.db.Transaction(ctx, func(tx *repository.Manager) error {
		if _, err := inHotel(ctx, tx, hotelID, roomID); err != nil {
			return err
		}
		bookings, err := tx.Bookings.CountByRoom(ctx, roomID)
		if err != nil {
			return fmt.Errorf("count bookings: %w", err)
		}
		if bookings > 0 {
			return apperr.ErrRoomHasBooking
		}

		if err := tx.RoomFacilities.DeleteByRoom(ctx, roomID); err != nil {
			return fmt.Errorf("unlink facilities: %w", err)
		}
		if err := tx.Rooms.Delete(ctx, hotelID, roomID); err != nil {
			if database.IsForeignKeyViolation(err) {
				return apperr.ErrRoomHasBooking
			}
			return roomNotFound(err)
		}
		return nil
	})
}

func hotelExists(ctx context.Context, db *repository.Manager, hotelID int64) error {
	if _, err := db.Hotels.GetByID(ctx, hotelID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.ErrHotelNotFound
		}
		return err
	}
	return nil
}

// inHotel checks the hotel first so a missing hotel is not reported as a missing room.
func inHotel(ctx context.Context, tx *repository.Manager, hotelID, roomID int64) (*domain.Room, error) {
	if err := hotelExists(ctx, tx, hotelID); err != nil {
		return nil, err
	}
	room, err := tx.Rooms.GetInHotel(ctx, hotelID, roomID)
	if err != nil {
		return nil, roomNotFound(err)
	}
	return room, nil
}

func facilitiesExist(ctx context.Context, tx *repository.Manager, ids []int64) error {
	missing, err := tx.Facilities.MissingIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("check facilities: %w", err)
	}
	if len(missing) > 0 {
		parts := make([]string, 0, len(missing))
		for _, id := range missing {
			parts = append(parts, fmt.Sprint(id))
		}
		return apperr.ErrFacilityNotFound.WithDetail("Удобства не найдены: " + strings.Join(parts, ", "))
	}
	return nil
}

func ensureUnique(ctx context.Context, tx *repository.Manager, room *domain.Room) error {
	dup, err := tx.Rooms.FindDuplicate(ctx, room)
	if err != nil {
		return fmt.Errorf("find duplicate room: %w", err)
	}
	if dup != nil {
		return apperr.ErrRoomExists
	}
	return nil
}

func roomNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.ErrRoomNotFound
	}
	return err
}
