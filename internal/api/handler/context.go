package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/intranet-portal/portal-api/internal/api/middleware"
	"github.com/intranet-portal/portal-api/internal/core/domain"
)

// claimFromContext returns the claim injected by middleware.Auth. Handlers
// mounted behind Auth treat a missing claim as a missing token.
func claimFromContext(c echo.Context) (domain.Claim, error) {
	claim, ok := c.Get(middleware.ClaimKey).(domain.Claim)
	if !ok {
		return domain.Claim{}, domain.ErrTokenMissing
	}
	return claim, nil
}

// optionalClaim returns the claim injected by middleware.OptionalAuth, or nil.
func optionalClaim(c echo.Context) *domain.Claim {
	claim, ok := c.Get(middleware.ClaimKey).(domain.Claim)
	if !ok {
		return nil
	}
	return &claim
}
