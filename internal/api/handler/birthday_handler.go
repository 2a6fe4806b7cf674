package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/intranet-portal/portal-api/internal/core/ports"
)

type BirthdayHandler struct {
	service ports.BirthdayService
}

func NewBirthdayHandler(service ports.BirthdayService) *BirthdayHandler {
	return &BirthdayHandler{service: service}
}

type birthdayDetail struct {
	Nombre          string     `json:"Nombre"`
	FechaNacimiento *time.Time `json:"FechaNacimiento"`
}

type birthdayResponse struct {
	TieneCumple bool             `json:"tieneCumple"`
	Nombres     []string         `json:"nombres"`
	Detalles    []birthdayDetail `json:"detalles"`
}

// Today lists the active users whose birthday is today.
//
// @Summary      Today's birthdays
// @Tags         portal
// @Produce      json
// @Success      200  {object}  birthdayResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/cumple-hoy [get]
func (h *BirthdayHandler) Today(c echo.Context) error {
	users, err := h.service.Today(c.Request().Context())
	if err != nil {
		return err
	}

	resp := birthdayResponse{
		TieneCumple: len(users) > 0,
		Nombres:     make([]string, 0, len(users)),
		Detalles:    make([]birthdayDetail, 0, len(users)),
	}
	for _, u := range users {
		resp.Nombres = append(resp.Nombres, u.DisplayName)
		resp.Detalles = append(resp.Detalles, birthdayDetail{Nombre: u.DisplayName, FechaNacimiento: u.BirthDate})
	}
	return c.JSON(http.StatusOK, resp)
}
