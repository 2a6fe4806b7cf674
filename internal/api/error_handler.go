package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/intranet-portal/portal-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Debug
// carries the underlying error outside production only.
type errorResponse struct {
	Message string `json:"message"`
	Debug   string `json:"debug,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to their HTTP status and user-facing message.
//   - Logs server-side failures without leaking details to the client.
//   - Renders {"message": "...", "debug": "..."}; debug only when exposeDebug is set.
func NewHTTPErrorHandler(log zerolog.Logger, exposeDebug bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		resp := errorResponse{Message: msg}
		if exposeDebug && code >= http.StatusInternalServerError {
			resp.Debug = err.Error()
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Validation carries its own user-facing message.
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, verr.Message
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Credenciales inválidas"
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, "Token inválido"
	case errors.Is(err, domain.ErrTokenMissing):
		return http.StatusForbidden, "Token requerido"
	case errors.Is(err, domain.ErrUnregisteredUser):
		return http.StatusForbidden, "Usuario no registrado en sistema"
	case errors.Is(err, domain.ErrInactiveUser):
		return http.StatusForbidden, "Usuario inactivo"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Acceso denegado"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "Usuario no encontrado"
	}

	// Echo's own errors (bind failures, 404 from router, body limit, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Dependency and unexpected errors: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("request failed")

	switch {
	case errors.Is(err, domain.ErrDirectoryUnavailable):
		return http.StatusInternalServerError, "Error en autenticación AD"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusInternalServerError, "Error de base de datos"
	default:
		return http.StatusInternalServerError, "Error interno del servidor"
	}
}
