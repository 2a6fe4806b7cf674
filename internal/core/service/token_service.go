package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/intranet-portal/portal-api/internal/core/domain"
	"github.com/intranet-portal/portal-api/internal/core/ports"
)

// portalClaims is the JWT payload. Field names match what the web client
// reads from the token.
type portalClaims struct {
	UserID            int64  `json:"id"`
	Role              string `json:"rol"`
	Area              string `json:"area"`
	DirectoryUsername string `json:"usuarioAD"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 credentials with a fixed lifetime.
// When a revocation store is set, Revoke and Verify honour it.
type TokenService struct {
	secret  []byte
	revoked ports.RevocationStore
	now     func() time.Time
}

var (
	_ ports.TokenIssuer   = (*TokenService)(nil)
	_ ports.TokenVerifier = (*TokenService)(nil)
	_ ports.TokenRevoker  = (*TokenService)(nil)
)

// NewTokenService returns a TokenService. revoked may be nil.
func NewTokenService(secret string, revoked ports.RevocationStore) *TokenService {
	return &TokenService{secret: []byte(secret), revoked: revoked, now: time.Now}
}

// Issue signs a credential for user. Role and area are defaulted and
// lower-cased on a copy; the caller's record is left untouched.
func (s *TokenService) Issue(user *domain.User) (string, domain.Claim, error) {
	u := *user
	u.Normalize()

	now := s.now().UTC().Truncate(time.Second)
	claim := domain.Claim{
		TokenID:           uuid.NewString(),
		UserID:            u.ID,
		Role:              u.Role,
		Area:              u.Area,
		DirectoryUsername: u.DirectoryUsername,
		IssuedAt:          now,
		ExpiresAt:         now.Add(domain.TokenLifetime),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, portalClaims{
		UserID:            claim.UserID,
		Role:              claim.Role,
		Area:              claim.Area,
		DirectoryUsername: claim.DirectoryUsername,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        claim.TokenID,
			IssuedAt:  jwt.NewNumericDate(claim.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claim.ExpiresAt),
		},
	})
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", domain.Claim{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, claim, nil
}

// Verify checks signature, algorithm and expiry, then the revocation list.
func (s *TokenService) Verify(ctx context.Context, token string) (domain.Claim, error) {
	if strings.TrimSpace(token) == "" {
		return domain.Claim{}, domain.ErrTokenMissing
	}

	var pc portalClaims
	_, err := jwt.ParseWithClaims(token, &pc, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Claim{}, domain.ErrTokenExpired
		}
		return domain.Claim{}, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}

	claim := domain.Claim{
		TokenID:           pc.ID,
		UserID:            pc.UserID,
		Role:              pc.Role,
		Area:              pc.Area,
		DirectoryUsername: pc.DirectoryUsername,
		ExpiresAt:         pc.ExpiresAt.Time,
	}
	if pc.IssuedAt != nil {
		claim.IssuedAt = pc.IssuedAt.Time
	}

	if s.revoked != nil && claim.TokenID != "" {
		revoked, err := s.revoked.IsRevoked(ctx, claim.TokenID)
		if err != nil {
			return domain.Claim{}, domain.RevocationFailure(err)
		}
		if revoked {
			return domain.Claim{}, domain.ErrTokenRevoked
		}
	}
	return claim, nil
}

// Revoke adds the claim's token id to the revocation list. Without a
// revocation store it is a no-op and the token stays valid until expiry.
func (s *TokenService) Revoke(ctx context.Context, claim domain.Claim) error {
	if s.revoked == nil || claim.TokenID == "" {
		return nil
	}
	if err := s.revoked.Revoke(ctx, claim.TokenID, claim.ExpiresAt); err != nil {
		return domain.RevocationFailure(err)
	}
	return nil
}

// RevocationEnabled reports whether logout invalidates tokens server-side.
func (s *TokenService) RevocationEnabled() bool {
	return s.revoked != nil
}
