package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/intranet-portal/portal-api/internal/api/metrics"
	"github.com/intranet-portal/portal-api/internal/core/domain"
)

// RequireAccess rejects requests whose claim does not satisfy req. It must
// run after Auth.
func RequireAccess(req domain.AccessRequirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claim, ok := c.Get(ClaimKey).(domain.Claim)
			if !ok {
				return domain.ErrTokenMissing
			}
			if !domain.Authorize(claim, req) {
				metrics.AccessDeniedTotal.Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
