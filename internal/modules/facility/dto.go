package facility

type FacilityRequest struct {
	Title string `json:"title"`
}
