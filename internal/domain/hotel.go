package domain

type Hotel struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Location string `json:"location"`
}

// HotelPatch carries only the fields present in a partial update.
type HotelPatch struct {
	Title    *string
	Location *string
}

type HotelFilter struct {
	Title    string
	Location string
	// DateFrom/DateTo restrict the result to hotels with a free room in the range.
	DateFrom *Date
	DateTo   *Date
	Limit    int
	Offset   int
}
