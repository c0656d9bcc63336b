package domain

type Room struct {
	ID          int64   `json:"id"`
	HotelID     int64   `json:"hotel_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Price       int     `json:"price"`
	Quantity    int     `json:"quantity"`

	// Relations
	Facilities []Facility `json:"facilities"`
}

type RoomPatch struct {
	Title       *string
	Description *string
	// ClearDescription sets description to NULL; Description is ignored then.
	ClearDescription bool
	Price            *int
	Quantity         *int
}

// RoomAvailability is a room plus the number of units still free in a date range.
type RoomAvailability struct {
	Room
	Available int `json:"available"`
}
