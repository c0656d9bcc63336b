package image

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/pkg/apperr"
	"hotelbooking/internal/pkg/response"
	"hotelbooking/internal/pkg/utils"
	"hotelbooking/internal/pkg/validator"
)

// multipartOverhead is the room left for boundaries and part headers on top of the file itself.
const multipartOverhead = 1 << 20

// Handler handles HTTP requests for hotel images.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public, rg *gin.RouterGroup) {
	public.GET("/images", h.List)
	public.GET("/images/:image_id", h.Get)
	rg.POST("/images", h.Upload)
}

// Upload принимает multipart-поле file (jpeg, png или webp).
func (h *Handler) Upload(c *gin.Context) {
	limit := h.service.MaxSize() + multipartOverhead
	if c.Request.ContentLength > limit {
		response.Fail(c, h.service.tooLarge())
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			response.Fail(c, h.service.tooLarge())
			return
		}
		response.Fail(c, apperr.ErrFileRequired)
		return
	}

	img, err := h.service.Upload(c.Request.Context(), fh)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, img)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := utils.PathID(c, "image_id")
	if !ok {
		return
	}

	img, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, img)
}

func (h *Handler) List(c *gin.Context) {
	var q ListImagesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, validator.Translate(err))
		return
	}

	images, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, images)
}
