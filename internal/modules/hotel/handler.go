package hotel

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

// RegisterRoutes mounts reads on public (cached) and writes on rg.
func (h *Handler) RegisterRoutes(public, rg *gin.RouterGroup) {
	public.GET("/hotels", h.List)
	public.GET("/hotels/:hotel_id", h.Get)

	hotels := rg.Group("/hotels")
	{
		hotels.POST("", h.Create)
		hotels.PUT("/:hotel_id", h.Update)
		hotels.PATCH("/:hotel_id", h.Patch)
		hotels.DELETE("/:hotel_id", h.Delete)
	}
}

// List: отели с фильтрами по названию, локации и свободным датам.
func (h *Handler) List(c *gin.Context) {
	var q ListHotelsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, validator.Translate(err))
		return
	}

	hotels, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, hotels)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := utils.PathID(c, "hotel_id")
	if !ok {
		return
	}

	hotel, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, hotel)
}

func (h *Handler) Create(c *gin.Context) {
	var req HotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, validator.Translate(err))
		return
	}

	hotel, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, hotel)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := utils.PathID(c, "hotel_id")
	if !ok {
		return
	}
	var req HotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, validator.Translate(err))
		return
	}

	if err := h.service.Update(c.Request.Context(), id, req); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK)
}

func (h *Handler) Patch(c *gin.Context) {
	id, ok := utils.PathID(c, "hotel_id")
	if !ok {
		return
	}
	var req HotelPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, validator.Translate(err))
		return
	}

	if err := h.service.Patch(c.Request.Context(), id, req); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := utils.PathID(c, "hotel_id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK)
}
