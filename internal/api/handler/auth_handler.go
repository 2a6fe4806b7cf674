package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/intranet-portal/portal-api/internal/api/metrics"
	"github.com/intranet-portal/portal-api/internal/core/domain"
	"github.com/intranet-portal/portal-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Usuario  string `json:"usuario" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// Login authenticates directory credentials and returns a bearer token.
//
// @Summary      Login
// @Description  Accepts DOMAIN\user, user@domain or a bare account name.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Directory credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      429   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_request").Inc()
		return domain.NewValidationError(msgInvalidPayload)
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_request").Inc()
		return domain.NewValidationError(msgCredentialsRequired)
	}

	token, user, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Identity:  req.Usuario,
		Password:  req.Password,
		RemoteIP:  c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	})
	metrics.LoginAttemptsTotal.WithLabelValues(loginMetricOutcome(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token, User: toUserResponse(user)})
}

// Me returns the current store record of the authenticated user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claim, err := claimFromContext(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), claim)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Logout ends the session. With a revocation store configured the token is
// rejected from now on; otherwise the client discards it.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claim, err := claimFromContext(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), claim); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msgLogoutOK})
}

func loginMetricOutcome(err error) string {
	switch {
	case err == nil:
		return string(domain.LoginSucceeded)
	case errors.Is(err, domain.ErrValidation):
		return "invalid_request"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return string(domain.LoginRejected)
	case errors.Is(err, domain.ErrUnregisteredUser):
		return string(domain.LoginUnregistered)
	case errors.Is(err, domain.ErrInactiveUser):
		return string(domain.LoginInactive)
	default:
		return string(domain.LoginFailed)
	}
}
