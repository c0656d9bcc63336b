package repository

import (
	"context"

	"gorm.io/gorm"
)

type RoomFacilityRepository struct {
	db *gorm.DB
}

func NewRoomFacilityRepository(db *gorm.DB) *RoomFacilityRepository {
	return &RoomFacilityRepository{db: db}
}

type roomFacilityModel struct {
	RoomID     int64 `gorm:"column:room_id;primaryKey;autoIncrement:false"`
	FacilityID int64 `gorm:"column:facility_id;primaryKey;autoIncrement:false"`

	Room     *roomModel     `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	Facility *facilityModel `gorm:"foreignKey:FacilityID;constraint:OnDelete:CASCADE"`
}

func (roomFacilityModel) TableName() string { return "rooms_facilities" }

func (r *RoomFacilityRepository) Add(ctx context.Context, roomID int64, facilityIDs []int64) error {
	if len(facilityIDs) == 0 {
		return nil
	}
	rows := make([]roomFacilityModel, 0, len(facilityIDs))
	for _, id := range facilityIDs {
		rows = append(rows, roomFacilityModel{RoomID: roomID, FacilityID: id})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// Set makes the room's facility set equal to facilityIDs, touching only the difference.
func (r *RoomFacilityRepository) Set(ctx context.Context, roomID int64, facilityIDs []int64) error {
	var current []int64
	err := r.db.WithContext(ctx).Model(&roomFacilityModel{}).
		Where("room_id = ?", roomID).
		Pluck("facility_id", &current).Error
	if err != nil {
		return err
	}

	want := make(map[int64]struct{}, len(facilityIDs))
	for _, id := range facilityIDs {
		want[id] = struct{}{}
	}
	have := make(map[int64]struct{}, len(current))
	var toDelete []int64
	for _, id := range current {
		have[id] = struct{}{}
		if _, ok := want[id]; !ok {
			toDelete = append(toDelete, id)
		}
	}
	var toAdd []int64
	for _, id := range facilityIDs {
		if _, ok := have[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}

	if len(toDelete) > 0 {
		err := r.db.WithContext(ctx).
			Where("room_id = ? AND facility_id IN ?", roomID, toDelete).
			Delete(&roomFacilityModel{}).Error
		if err != nil {
			return err
		}
	}
	return r.Add(ctx, roomID, toAdd)
}

func (r *RoomFacilityRepository) DeleteByRoom(ctx context.Context, roomID int64) error {
	return r.db.WithContext(ctx).Where("room_id = ?", roomID).Delete(&roomFacilityModel{}).Error
}
