package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/intranet-portal/portal-api/internal/core/domain"
	"github.com/intranet-portal/portal-api/internal/core/ports"
)

const debugUserLimit = 255

// DebugInfo is the configuration summary exposed by the debug endpoint.
// Secrets are reported only as present or absent.
type DebugInfo struct {
	Port          string
	Env           string
	DirectoryMode string
	DirectoryURL  bool
	BaseDN        bool
	ServiceBind   bool
}

// DebugHandler serves troubleshooting endpoints. It is only mounted outside
// production.
type DebugHandler struct {
	info  DebugInfo
	users ports.UserRepository
}

func NewDebugHandler(info DebugInfo, users ports.UserRepository) *DebugHandler {
	return &DebugHandler{info: info, users: users}
}

type debugHeaders struct {
	Authorization string `json:"authorization"`
	UserAgent     string `json:"userAgent"`
	Host          string `json:"host"`
}

type debugDirectory struct {
	Mode       string `json:"mode"`
	Configured bool   `json:"configured"`
	URL        bool   `json:"url"`
	BaseDN     bool   `json:"baseDn"`
}

type debugResponse struct {
	Timestamp time.Time      `json:"timestamp"`
	Port      string         `json:"port"`
	Env       string         `json:"env"`
	Headers   debugHeaders   `json:"headers"`
	Directory debugDirectory `json:"directory"`
}

// Config reports request headers and which directory settings are present.
//
// @Summary      Configuration debug
// @Tags         debug
// @Produce      json
// @Success      200  {object}  debugResponse
// @Router       /api/auth/debug [get]
func (h *DebugHandler) Config(c echo.Context) error {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	switch {
	case auth == "":
		auth = "NO PRESENTE"
	case len(auth) > 20:
		auth = auth[:20] + "..."
	}

	return c.JSON(http.StatusOK, debugResponse{
		Timestamp: time.Now().UTC(),
		Port:      h.info.Port,
		Env:       h.info.Env,
		Headers: debugHeaders{
			Authorization: auth,
			UserAgent:     c.Request().UserAgent(),
			Host:          c.Request().Host,
		},
		Directory: debugDirectory{
			Mode:       h.info.DirectoryMode,
			Configured: h.info.DirectoryURL && h.info.BaseDN && h.info.ServiceBind,
			URL:        h.info.DirectoryURL,
			BaseDN:     h.info.BaseDN,
		},
	})
}

type debugUser struct {
	ID        int64  `json:"id"`
	Nombre    string `json:"nombre"`
	UsuarioAD string `json:"usuarioAD"`
	Activo    bool   `json:"activo"`
	Rol       string `json:"rol"`
	Area      string `json:"area"`
}

type debugUsersResponse struct {
	Users      []debugUser `json:"users"`
	TotalFound int         `json:"totalFound"`
}

// Users lists the first store users with their role and area names as
// stored, without defaults.
//
// @Summary      User listing debug
// @Tags         debug
// @Produce      json
// @Success      200  {object}  debugUsersResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/debug/usuarios [get]
func (h *DebugHandler) Users(c echo.Context) error {
	users, err := h.users.List(c.Request().Context(), debugUserLimit)
	if err != nil {
		return domain.StoreFailure(err)
	}

	resp := debugUsersResponse{Users: make([]debugUser, 0, len(users)), TotalFound: len(users)}
	for _, u := range users {
		resp.Users = append(resp.Users, debugUser{
			ID:        u.ID,
			Nombre:    u.DisplayName,
			UsuarioAD: u.DirectoryUsername,
			Activo:    u.Active,
			Rol:       u.Role,
			Area:      u.Area,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
