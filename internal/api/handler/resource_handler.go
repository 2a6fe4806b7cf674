package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/intranet-portal/portal-api/internal/core/ports"
)

type ResourceHandler struct {
	service ports.ResourceService
}

func NewResourceHandler(service ports.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: service}
}

// Catalog returns the document catalog of the resources page.
//
// @Summary      Resource catalog
// @Tags         portal
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ResourceCategory
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/recursos [get]
func (h *ResourceHandler) Catalog(c echo.Context) error {
	catalog, err := h.service.Catalog(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, catalog)
}
