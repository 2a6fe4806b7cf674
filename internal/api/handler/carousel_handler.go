package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/intranet-portal/portal-api/internal/api/metrics"
	"github.com/intranet-portal/portal-api/internal/core/domain"
	"github.com/intranet-portal/portal-api/internal/core/ports"
)

type CarouselHandler struct {
	service ports.CarouselService
}

func NewCarouselHandler(service ports.CarouselService) *CarouselHandler {
	return &CarouselHandler{service: service}
}

type createSlideResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// List returns the active slides, newest first.
//
// @Summary      Carousel slides
// @Tags         carousel
// @Produce      json
// @Success      200  {array}   slideResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/carousel [get]
func (h *CarouselHandler) List(c echo.Context) error {
	slides, err := h.service.ListActive(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]slideResponse, 0, len(slides))
	for _, s := range slides {
		resp = append(resp, toSlideResponse(s))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create adds a slide from a multipart form with title, text and image.
//
// @Summary      Add carousel slide
// @Tags         carousel
// @Accept       multipart/form-data
// @Produce      json
// @Param        title  formData  string  true   "Slide title"
// @Param        text   formData  string  false  "Slide text"
// @Param        image  formData  file    true   "PNG, JPEG, GIF or WebP image"
// @Success      200    {object}  createSlideResponse
// @Failure      400    {object}  messageResponse
// @Failure      413    {object}  messageResponse
// @Failure      500    {object}  messageResponse
// @Router       /api/carousel [post]
func (h *CarouselHandler) Create(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return domain.NewValidationError(msgSlideFieldsRequired)
		}
		return err
	}
	file, err := fh.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = h.service.Create(c.Request().Context(), ports.SlideInput{
		Title:    c.FormValue("title"),
		Text:     c.FormValue("text"),
		Filename: fh.Filename,
		Image:    file,
	})
	if err != nil {
		return err
	}

	metrics.SlidesCreatedTotal.Inc()
	return c.JSON(http.StatusOK, createSlideResponse{Success: true, Message: msgSlideCreated})
}
