package ports

import (
	"context"

	"github.com/intranet-portal/portal-api/internal/core/domain"
)

// LoginInput carries a login request plus the request metadata recorded in
// the audit trail.
type LoginInput struct {
	Identity  string
	Password  string
	RemoteIP  string
	UserAgent string
}

type AuthService interface {
	Login(ctx context.Context, in LoginInput) (string, *domain.User, error)
	Me(ctx context.Context, claim domain.Claim) (*domain.User, error)
	Logout(ctx context.Context, claim domain.Claim) error
}

// IdentityResolver authenticates a raw identity against the directory and
// maps it to a registered, active portal user.
type IdentityResolver interface {
	Resolve(ctx context.Context, rawIdentity, secret string) (*domain.User, error)
}

// TokenIssuer signs credentials for resolved users.
type TokenIssuer interface {
	Issue(user *domain.User) (string, domain.Claim, error)
}

// TokenVerifier checks bearer tokens and returns their claim.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (domain.Claim, error)
}

// TokenRevoker invalidates a claim before its natural expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, claim domain.Claim) error
}
