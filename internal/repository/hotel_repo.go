package repository

import (
	"context"
	"strings"

	"hotelbooking/internal/domain"

	"gorm.io/gorm"
)

type HotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

type hotelModel struct {
	ID       int64  `gorm:"column:id;primaryKey"`
	Title    string `gorm:"column:title;size:100;not null"`
	Location string `gorm:"column:location;not null"`
}

func (hotelModel) TableName() string { return "hotels" }

func toDomainHotel(m hotelModel) *domain.Hotel {
	return &domain.Hotel{
		ID:       m.ID,
		Title:    m.Title,
		Location: m.Location,
	}
}

func toHotelModel(h *domain.Hotel) hotelModel {
	return hotelModel{
		ID:       h.ID,
		Title:    strings.TrimSpace(h.Title),
		Location: strings.TrimSpace(h.Location),
	}
}

// List applies case-insensitive substring filters and, when both dates are set,
// keeps only hotels with at least one free room in the range.
func (r *HotelRepository) List(ctx context.Context, f domain.HotelFilter) ([]domain.Hotel, error) {
	q := r.db.WithContext(ctx).Model(&hotelModel{})

	if loc := strings.TrimSpace(f.Location); loc != "" {
		q = q.Where("LOWER(hotels.location) LIKE LOWER(?)", "%"+loc+"%")
	}
	if title := strings.TrimSpace(f.Title); title != "" {
		q = q.Where("LOWER(hotels.title) LIKE LOWER(?)", "%"+title+"%")
	}
	if f.DateFrom != nil && f.DateTo != nil {
		free := freeRoomsQuery(r.db.WithContext(ctx), *f.DateFrom, *f.DateTo).Select("rooms.hotel_id")
		q = q.Where("hotels.id IN (?)", free)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var rows []hotelModel
	if err := q.Order("hotels.id").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Hotel, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainHotel(m))
	}
	return out, nil
}

func (r *HotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	var m hotelModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err)
	}
	return toDomainHotel(m), nil
}

// FindDuplicate returns another hotel with the same title and location, if any.
func (r *HotelRepository) FindDuplicate(ctx context.Context, title, location string, exceptID int64) (*domain.Hotel, error) {
	var rows []hotelModel
	err := r.db.WithContext(ctx).
		Where("LOWER(title) = LOWER(?) AND LOWER(location) = LOWER(?)",
			strings.TrimSpace(title), strings.TrimSpace(location)).
		Where("id <> ?", exceptID).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return toDomainHotel(rows[0]), nil
}

func (r *HotelRepository) Create(ctx context.Context, h *domain.Hotel) error {
	m := toHotelModel(h)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*h = *toDomainHotel(m)
	return nil
}

// Update overwrites every column of the hotel.
func (r *HotelRepository) Update(ctx context.Context, h *domain.Hotel) error {
	m := toHotelModel(h)
	tx := r.db.WithContext(ctx).Model(&hotelModel{}).
		Where("id = ?", h.ID).
		Updates(map[string]any{"title": m.Title, "location": m.Location})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	*h = *toDomainHotel(m)
	return nil
}

// Patch writes only the fields present in p.
func (r *HotelRepository) Patch(ctx context.Context, id int64, p domain.HotelPatch) error {
	updates := map[string]any{}
	if p.Title != nil {
		updates["title"] = strings.TrimSpace(*p.Title)
	}
	if p.Location != nil {
		updates["location"] = strings.TrimSpace(*p.Location)
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&hotelModel{}).Where("id = ?", id).Updates(updates).Error
}

func (r *HotelRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&hotelModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
