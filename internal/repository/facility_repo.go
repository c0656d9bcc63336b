package repository

import (
	"context"
	"strings"

	"hotelbooking/internal/domain"

	"gorm.io/gorm"
)

type FacilityRepository struct {
	db *gorm.DB
}

func NewFacilityRepository(db *gorm.DB) *FacilityRepository {
	return &FacilityRepository{db: db}
}

type facilityModel struct {
	ID    int64  `gorm:"column:id;primaryKey"`
	Title string `gorm:"column:title;size:100;not null;uniqueIndex"`
}

func (facilityModel) TableName() string { return "facilities" }

func toDomainFacility(m facilityModel) *domain.Facility {
	return &domain.Facility{ID: m.ID, Title: m.Title}
}

func (r *FacilityRepository) List(ctx context.Context) ([]domain.Facility, error) {
	var rows []facilityModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Facility, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainFacility(m))
	}
	return out, nil
}

func (r *FacilityRepository) GetByTitle(ctx context.Context, title string) (*domain.Facility, error) {
	var m facilityModel
	err := r.db.WithContext(ctx).
		Where("LOWER(title) = LOWER(?)", strings.TrimSpace(title)).
		First(&m).Error
	if err != nil {
		return nil, notFound(err)
	}
	return toDomainFacility(m), nil
}

func (r *FacilityRepository) Create(ctx context.Context, f *domain.Facility) error {
	m := facilityModel{Title: strings.TrimSpace(f.Title)}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*f = *toDomainFacility(m)
	return nil
}

// MissingIDs returns the ids from the input that have no facility row.
func (r *FacilityRepository) MissingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []int64
	if err := r.db.WithContext(ctx).Model(&facilityModel{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}

	have := make(map[int64]struct{}, len(found))
	for _, id := range found {
		have[id] = struct{}{}
	}
	var missing []int64
	for _, id := range ids {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
