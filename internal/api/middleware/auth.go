package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/intranet-portal/portal-api/internal/api/metrics"
	"github.com/intranet-portal/portal-api/internal/core/domain"
	"github.com/intranet-portal/portal-api/internal/core/ports"
)

// ClaimKey is the echo context key holding the verified domain.Claim.
const ClaimKey = "claim"

// Auth verifies the bearer token and injects its claim into the context.
// A missing token yields domain.ErrTokenMissing, a bad one the verifier's
// error.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			claim, err := verifier.Verify(c.Request().Context(), token)
			metrics.TokenVerificationsTotal.WithLabelValues(verificationResult(err)).Inc()
			if err != nil {
				return err
			}

			c.Set(ClaimKey, claim)
			return next(c)
		}
	}
}

// OptionalAuth injects the claim when a valid bearer token is present and
// lets the request through anonymously otherwise.
func OptionalAuth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return next(c)
			}
			claim, err := verifier.Verify(c.Request().Context(), token)
			metrics.TokenVerificationsTotal.WithLabelValues(verificationResult(err)).Inc()
			if err == nil {
				c.Set(ClaimKey, claim)
			}
			return next(c)
		}
	}
}

// bearerToken returns the token of an "Authorization: Bearer <token>" header,
// or "" when the header is absent or uses another scheme.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func verificationResult(err error) string {
	switch {
	case err == nil:
		return "valid"
	case errors.Is(err, domain.ErrTokenMissing):
		return "missing"
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenRevoked):
		return "revoked"
	case errors.Is(err, domain.ErrTokenInvalid):
		return "invalid"
	default:
		return "error"
	}
}
