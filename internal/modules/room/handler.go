package room

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/pkg/response"
	"hotelbooking/internal/pkg/utils"
	"hotelbooking/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public, rg *gin.RouterGroup) {
	public.GET("/hotels/:hotel_id/rooms", h.List)
	public.GET("/hotels/:hotel_id/rooms/:room_id", h.Get)

	rooms := rg.Group("/hotels/:hotel_id/rooms")
	{
		rooms.POST("", h.Create)
		rooms.PUT("/:room_id", h.Update)
		rooms.PATCH("/:room_id", h.Patch)
		rooms.DELETE("/:room_id", h.Delete)
	}
}

// List: номера отеля; с датами только те, где остались свободные.
func (h *Handler) List(c *gin.Context) {
	hotelID, ok := utils.PathID(c, "hotel_id")
	if !ok {
		return
	}
	var q ListRoomsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, validator.Translate(err))
		return
	}
	from, to, err := validator.DateRange(q.DateFrom, q.DateTo)
	if err != nil {
		response.Fail(c, err)
		return
	}

	if from == nil {
		rooms, err := h.service.List(c.Request.Context(), hotelID)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, rooms)
		return
	}

	rooms, err := h.service.ListAvailable(c.Request.Context(), hotelID, *from, *to)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, rooms)
}

func (h *Handler) Get(c *gin.Context) {
	hotelID, roomID, ok := ids(c)
	if !ok {
		return
	}

	room, err := h.service.Get(c.Request.Context(), hotelID, roomID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, room)
}

func (h *Handler) Create(c *gin.Context) {
	hotelID, ok := utils.PathID(c, "hotel_id")
	if !ok {
		return
	}
	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, validator.Translate(err))
		return
	}

	room, err := h.service.Create(c.Request.Context(), hotelID, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, room)
}

func (h *Handler) Update(c *gin.Context) {
	hotelID, roomID, ok := ids(c)
	if !ok {
		return
	}
	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, validator.Translate(err))
		return
	}

	if err := h.service.Update(c.Request.Context(), hotelID, roomID, req); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK)
}

func (h *Handler) Patch(c *gin.Context) {
	hotelID, roomID, ok := ids(c)
	if !ok {
		return
	}
	var req RoomPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, validator.Translate(err))
		return
	}

	if err := h.service.Patch(c.Request.Context(), hotelID, roomID, req); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK)
}

func (h *Handler) Delete(c *gin.Context) {
	hotelID, roomID, ok := ids(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), hotelID, roomID); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK)
}

func ids(c *gin.Context) (hotelID, roomID int64, ok bool) {
	if hotelID, ok = utils.PathID(c, "hotel_id"); !ok {
		return 0, 0, false
	}
	if roomID, ok = utils.PathID(c, "room_id"); !ok {
		return 0, 0, false
	}
	return hotelID, roomID, true
}
