package room

import "encoding/json"

type RoomRequest struct {
	Title         string  `json:"title" binding:"required,notblank"`
	Description   *string `json:"description"`
	Price         *int    `json:"price" binding:"required,gt=0,lte=1000000000"`
	Quantity      *int    `json:"quantity" binding:"required,gte=0"`
	FacilitiesIDs []int64 `json:"facilities_ids" binding:"omitempty,dive,gt=0"`
}

// RoomPatchRequest leaves nil fields untouched. A present facilities_ids
// (even []) replaces the facility set; "description": null clears it.
type RoomPatchRequest struct {
	Title         *string        `json:"title" binding:"omitempty,notblank"`
	Description   NullableString `json:"description"`
	Price         *int           `json:"price" binding:"omitempty,gt=0,lte=1000000000"`
	Quantity      *int           `json:"quantity" binding:"omitempty,gte=0"`
	FacilitiesIDs []int64        `json:"facilities_ids" binding:"omitempty,dive,gt=0"`
}

// NullableString tells an absent JSON field (Set false) from an explicit null.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

type ListRoomsQuery struct {
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}
