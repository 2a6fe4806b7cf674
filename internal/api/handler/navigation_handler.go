package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/intranet-portal/portal-api/internal/core/guard"
)

type NavigationHandler struct {
	routes []guard.Route
}

func NewNavigationHandler(routes []guard.Route) *NavigationHandler {
	return &NavigationHandler{routes: routes}
}

type routeDecision struct {
	Path      string `json:"path"`
	Protected bool   `json:"protected"`
	guard.Decision
}

// Routes evaluates every client route against the caller's session, so the
// web client applies the same access rules as the server.
//
// @Summary      Client route decisions
// @Tags         portal
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  routeDecision
// @Router       /api/rutas [get]
func (h *NavigationHandler) Routes(c echo.Context) error {
	session := guard.Session{Claim: optionalClaim(c)}

	resp := make([]routeDecision, 0, len(h.routes))
	for _, r := range h.routes {
		resp = append(resp, routeDecision{
			Path:      r.Path,
			Protected: r.Protected,
			Decision:  guard.Decide(session, r),
		})
	}
	return c.JSON(http.StatusOK, resp)
}
