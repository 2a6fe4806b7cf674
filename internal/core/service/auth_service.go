package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/intranet-portal/portal-api/internal/core/domain"
	"github.com/intranet-portal/portal-api/internal/core/ports"
)

const auditTimeout = 2 * time.Second

// AuthService implements login, profile lookup and logout.
type AuthService struct {
	resolver ports.IdentityResolver
	issuer   ports.TokenIssuer
	revoker  ports.TokenRevoker
	users    ports.UserRepository
	audit    ports.AuditRepository
	log      zerolog.Logger
	now      func() time.Time
}

var _ ports.AuthService = (*AuthService)(nil)

// NewAuthService wires the login flow. audit and revoker may be nil.
func NewAuthService(
	resolver ports.IdentityResolver,
	issuer ports.TokenIssuer,
	revoker ports.TokenRevoker,
	users ports.UserRepository,
	audit ports.AuditRepository,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		resolver: resolver,
		issuer:   issuer,
		revoker:  revoker,
		users:    users,
		audit:    audit,
		log:      log,
		now:      time.Now,
	}
}

// Login resolves the identity and issues a credential for it.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (string, *domain.User, error) {
	user, err := s.resolver.Resolve(ctx, in.Identity, in.Password)
	if err != nil {
		if !errors.Is(err, domain.ErrValidation) {
			s.record(ctx, in, loginOutcome(err), 0)
		}
		return "", nil, err
	}

	token, _, err := s.issuer.Issue(user)
	if err != nil {
		s.record(ctx, in, domain.LoginFailed, user.ID)
		return "", nil, err
	}

	s.record(ctx, in, domain.LoginSucceeded, user.ID)
	s.log.Info().Int64("user_id", user.ID).Str("role", user.Role).Str("area", user.Area).Msg("login succeeded")
	return token, user, nil
}

// Me returns the current store record of the claim's user. Role and area
// come from the store, not from the claim.
func (s *AuthService) Me(ctx context.Context, claim domain.Claim) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, claim.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, domain.StoreFailure(err)
	}
	user.Normalize()
	return user, nil
}

// Logout revokes the credential when a revocation store is configured.
// Otherwise the client discarding the token is the whole logout.
func (s *AuthService) Logout(ctx context.Context, claim domain.Claim) error {
	if s.revoker == nil {
		return nil
	}
	return s.revoker.Revoke(ctx, claim)
}

// record writes the audit trail entry. Failures are logged, never returned.
func (s *AuthService) record(ctx context.Context, in ports.LoginInput, outcome domain.LoginOutcome, userID int64) {
	if s.audit == nil {
		return
	}
	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)
	defer cancel()

	attempt := domain.LoginAttempt{
		Identity:  domain.NormalizeIdentity(in.Identity),
		Outcome:   outcome,
		UserID:    userID,
		RemoteIP:  in.RemoteIP,
		UserAgent: in.UserAgent,
		At:        s.now().UTC(),
	}
	if err := s.audit.RecordLogin(auditCtx, attempt); err != nil {
		s.log.Warn().Err(err).Str("outcome", string(outcome)).Msg("failed to record login attempt")
	}
}

func loginOutcome(err error) domain.LoginOutcome {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return domain.LoginRejected
	case errors.Is(err, domain.ErrUnregisteredUser):
		return domain.LoginUnregistered
	case errors.Is(err, domain.ErrInactiveUser):
		return domain.LoginInactive
	default:
		return domain.LoginFailed
	}
}
