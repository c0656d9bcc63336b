package hotel

type HotelRequest struct {
	Title    string `json:"title" binding:"required,notblank,max=100"`
	Location string `json:"location" binding:"required,notblank"`
}

type HotelPatchRequest struct {
	Title    *string `json:"title" binding:"omitempty,notblank,max=100"`
	Location *string `json:"location" binding:"omitempty,notblank"`
}

type ListHotelsQuery struct {
	Title    string `form:"title"`
	Location string `form:"location"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Page     int    `form:"page,default=1" binding:"gte=1"`
	PerPage  int    `form:"per_page,default=5" binding:"gte=1,lt=30"`
}
