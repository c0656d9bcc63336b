package domain

type Facility struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}
