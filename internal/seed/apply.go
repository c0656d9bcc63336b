package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/repository"
)

// Stats counts what Apply created; rows that already existed are skipped.
type Stats struct {
	Facilities int
	Hotels     int
	Rooms      int
}

// Apply writes the catalog in one transaction. Running it twice is a no-op.
func Apply(ctx context.Context, db *repository.Manager, c *Catalog, log *zap.Logger) (Stats, error) {
	var stats Stats
	err := db.Transaction(ctx, func(tx *repository.Manager) error {
		stats = Stats{}
		facilityIDs := make(map[string]int64)

		ensureFacility := func(title string) (int64, error) {
			key := strings.ToLower(strings.TrimSpace(title))
			if id, ok := facilityIDs[key]; ok {
				return id, nil
			}
			f, err := tx.Facilities.GetByTitle(ctx, title)
			switch {
			case err == nil:
			case errors.Is(err, repository.ErrNotFound):
				f = &domain.Facility{Title: strings.TrimSpace(title)}
				if err := tx.Facilities.Create(ctx, f); err != nil {
					return 0, fmt.Errorf("create facility %q: %w", title, err)
				}
				stats.Facilities++
			default:
				return 0, err
			}
			facilityIDs[key] = f.ID
			return f.ID, nil
		}

		for _, f := range c.Facilities {
			if _, err := ensureFacility(f.Title); err != nil {
				return err
			}
		}

		for _, hs := range c.Hotels {
			hotel, err := tx.Hotels.FindDuplicate(ctx, hs.Title, hs.Location, 0)
			if err != nil {
				return err
			}
			if hotel == nil {
				hotel = &domain.Hotel{Title: strings.TrimSpace(hs.Title), Location: strings.TrimSpace(hs.Location)}
				if err := tx.Hotels.Create(ctx, hotel); err != nil {
					return fmt.Errorf("create hotel %q: %w", hs.Title, err)
				}
				stats.Hotels++
			}

			for _, rs := range hs.Rooms {
				room := &domain.Room{
					HotelID:     hotel.ID,
					Title:       strings.TrimSpace(rs.Title),
					Description: rs.Description,
					Price:       rs.Price,
					Quantity:    rs.Quantity,
				}
				dup, err := tx.Rooms.FindDuplicate(ctx, room)
				if err != nil {
					return err
				}
				if dup != nil {
					continue
				}
				if err := tx.Rooms.Create(ctx, room); err != nil {
					return fmt.Errorf("create room %q in %q: %w", rs.Title, hs.Title, err)
				}

				ids := make([]int64, 0, len(rs.Facilities))
				seen := make(map[int64]struct{}, len(rs.Facilities))
				for _, name := range rs.Facilities {
					id, err := ensureFacility(name)
					if err != nil {
						return err
					}
					if _, ok := seen[id]; ok {
						continue
					}
					seen[id] = struct{}{}
					ids = append(ids, id)
				}
				if err := tx.RoomFacilities.Add(ctx, room.ID, ids); err != nil {
					return fmt.Errorf("link facilities to room %q: %w", rs.Title, err)
				}
				stats.Rooms++
			}
		}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}

	log.Info("seed applied",
		zap.Int("facilities", stats.Facilities),
		zap.Int("hotels", stats.Hotels),
		zap.Int("rooms", stats.Rooms),
	)
	return stats, nil
}
