package repository

import (
	"context"
	"strings"

	"hotelbooking/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID          int64   `gorm:"column:id;primaryKey"`
	HotelID     int64   `gorm:"column:hotel_id;not null;index"`
	Title       string  `gorm:"column:title;not null"`
	Description *string `gorm:"column:description"`
	Price       int     `gorm:"column:price;not null"`
	Quantity    int     `gorm:"column:quantity;not null"`

	Hotel *hotelModel `gorm:"foreignKey:HotelID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (roomModel) TableName() string { return "rooms" }

type roomAvailabilityRow struct {
	roomModel
	Available int `gorm:"column:available"`
}

func toDomainRoom(m roomModel) *domain.Room {
	return &domain.Room{
		ID:          m.ID,
		HotelID:     m.HotelID,
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		Quantity:    m.Quantity,
	}
}

func toRoomModel(r *domain.Room) roomModel {
	return roomModel{
		ID:          r.ID,
		HotelID:     r.HotelID,
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Price:       r.Price,
		Quantity:    r.Quantity,
	}
}

// ListByHotel returns every room of the hotel with its facilities.
func (r *RoomRepository) ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	var rows []roomModel
	if err := r.db.WithContext(ctx).Where("hotel_id = ?", hotelID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Room, 0, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRoom(m))
		ids = append(ids, m.ID)
	}
	if err := r.attachFacilities(ctx, ids, func(i int, f []domain.Facility) { out[i].Facilities = f }); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAvailable returns the hotel's rooms that have a free unit in [from, to).
func (r *RoomRepository) ListAvailable(ctx context.Context, hotelID int64, from, to domain.Date) ([]domain.RoomAvailability, error) {
	var rows []roomAvailabilityRow
	err := freeRoomsQuery(r.db.WithContext(ctx), from, to).
		Select("rooms.*, rooms.quantity - COALESCE(rooms_count.rooms_booked, 0) AS available").
		Where("rooms.hotel_id = ?", hotelID).
		Order("rooms.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.RoomAvailability, 0, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.RoomAvailability{Room: *toDomainRoom(row.roomModel), Available: row.Available})
		ids = append(ids, row.ID)
	}
	if err := r.attachFacilities(ctx, ids, func(i int, f []domain.Facility) { out[i].Facilities = f }); err != nil {
		return nil, err
	}
	return out, nil
}

// GetInHotel loads a room only if it belongs to the given hotel.
func (r *RoomRepository) GetInHotel(ctx context.Context, hotelID, roomID int64) (*domain.Room, error) {
	var m roomModel
	err := r.db.WithContext(ctx).Where("id = ? AND hotel_id = ?", roomID, hotelID).First(&m).Error
	if err != nil {
		return nil, notFound(err)
	}

	room := toDomainRoom(m)
	if err := r.attachFacilities(ctx, []int64{room.ID}, func(_ int, f []domain.Facility) { room.Facilities = f }); err != nil {
		return nil, err
	}
	return room, nil
}

// GetForBooking loads a room and, on PostgreSQL, locks its row until the transaction ends.
func (r *RoomRepository) GetForBooking(ctx context.Context, id int64) (*domain.Room, error) {
	q := r.db.WithContext(ctx)
	if q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var m roomModel
	if err := q.First(&m, id).Error; err != nil {
		return nil, notFound(err)
	}
	return toDomainRoom(m), nil
}

// FindDuplicate looks for a room in the hotel with identical attributes.
func (r *RoomRepository) FindDuplicate(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	q := r.db.WithContext(ctx).
		Where("hotel_id = ? AND title = ? AND price = ? AND quantity = ?",
			room.HotelID, strings.TrimSpace(room.Title), room.Price, room.Quantity).
		Where("id <> ?", room.ID)
	if room.Description == nil {
		q = q.Where("description IS NULL")
	} else {
		q = q.Where("description = ?", *room.Description)
	}

	var rows []roomModel
	if err := q.Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return toDomainRoom(rows[0]), nil
}

func (r *RoomRepository) CountByHotel(ctx context.Context, hotelID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&roomModel{}).Where("hotel_id = ?", hotelID).Count(&n).Error
	return n, err
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	facilities := room.Facilities
	*room = *toDomainRoom(m)
	room.Facilities = facilities
	return nil
}

// Update overwrites every column of the room, description included.
func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	return r.db.WithContext(ctx).Model(&roomModel{}).
		Where("id = ? AND hotel_id = ?", room.ID, room.HotelID).
		Updates(map[string]any{
			"title":       m.Title,
			"description": m.Description,
			"price":       m.Price,
			"quantity":    m.Quantity,
		}).Error
}

// Patch writes only the fields present in p.
func (r *RoomRepository) Patch(ctx context.Context, hotelID, roomID int64, p domain.RoomPatch) error {
	updates := map[string]any{}
	if p.Title != nil {
		updates["title"] = strings.TrimSpace(*p.Title)
	}
	switch {
	case p.ClearDescription:
		updates["description"] = nil
	case p.Description != nil:
		updates["description"] = *p.Description
	}
	if p.Price != nil {
		updates["price"] = *p.Price
	}
	if p.Quantity != nil {
		updates["quantity"] = *p.Quantity
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&roomModel{}).
		Where("id = ? AND hotel_id = ?", roomID, hotelID).
		Updates(updates).Error
}

func (r *RoomRepository) Delete(ctx context.Context, hotelID, roomID int64) error {
	tx := r.db.WithContext(ctx).Where("id = ? AND hotel_id = ?", roomID, hotelID).Delete(&roomModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// attachFacilities loads facilities for roomIDs and hands each slice to set by index.
func (r *RoomRepository) attachFacilities(ctx context.Context, roomIDs []int64, set func(i int, f []domain.Facility)) error {
	if len(roomIDs) == 0 {
		return nil
	}

	var rows []struct {
		RoomID int64
		ID     int64
		Title  string
	}
	err := r.db.WithContext(ctx).
		Table("rooms_facilities").
		Select("rooms_facilities.room_id, facilities.id, facilities.title").
		Joins("JOIN facilities ON facilities.id = rooms_facilities.facility_id").
		Where("rooms_facilities.room_id IN ?", roomIDs).
		Order("facilities.id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	byRoom := make(map[int64][]domain.Facility, len(roomIDs))
	for _, row := range rows {
		byRoom[row.RoomID] = append(byRoom[row.RoomID], domain.Facility{ID: row.ID, Title: row.Title})
	}
	for i, id := range roomIDs {
		f := byRoom[id]
		if f == nil {
			f = []domain.Facility{}
		}
		set(i, f)
	}
	return nil
}
