package facility

import (
	"context"
	"errors"
	"strings"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/apperr"
	"hotelbooking/internal/repository"
)

type Service struct {
	db *repository.Manager
}

func NewService(db *repository.Manager) *Service {
	return &Service{db: db}
}

func (s *Service) List(ctx context.Context) ([]domain.Facility, error) {
	return s.db.Facilities.List(ctx)
}

// Create adds a facility; titles are unique case-insensitively.
func (s *Service) Create(ctx context.Context, req FacilityRequest) (*domain.Facility, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.ErrFacilityTitleEmpty
	}

	f := &domain.Facility{Title: title}
	err := s.db.Transaction(ctx, func(tx *repository.Manager) error {
		_, err := tx.Facilities.GetByTitle(ctx, title)
		switch {
		case err == nil:
			return apperr.ErrFacilityExists
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}

		if err := tx.Facilities.Create(ctx, f); err != nil {
			if database.IsUniqueViolation(err) {
				return apperr.ErrFacilityExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}
