package handler

import (
	"time"

	"github.com/intranet-portal/portal-api/internal/core/domain"
)

// messageResponse is the body of simple confirmations.
type messageResponse struct {
	Message string `json:"message"`
}

// userResponse is the public shape of a portal user.
type userResponse struct {
	ID        int64  `json:"id"`
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	UsuarioAD string `json:"usuarioAD"`
	Rol       string `json:"rol"`
	Area      string `json:"area"`
	Activo    bool   `json:"activo"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Nombre:    u.DisplayName,
		Email:     u.Email,
		UsuarioAD: u.DirectoryUsername,
		Rol:       u.Role,
		Area:      u.Area,
		Activo:    u.Active,
	}
}

type slideResponse struct {
	ID        int64     `json:"Id"`
	Title     string    `json:"Title"`
	Text      string    `json:"Text"`
	Image     string    `json:"Image"`
	CreatedAt time.Time `json:"CreatedAt"`
}

func toSlideResponse(s domain.Slide) slideResponse {
	return slideResponse{
		ID:        s.ID,
		Title:     s.Title,
		Text:      s.Text,
		Image:     s.Image,
		CreatedAt: s.CreatedAt,
	}
}
