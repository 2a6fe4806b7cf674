package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/intranet-portal/portal-api/internal/core/domain"
	"github.com/intranet-portal/portal-api/internal/core/ports"
)

type identityResolver struct {
	directory ports.DirectoryClient
	users     ports.UserRepository
	log       zerolog.Logger
}

// NewIdentityResolver returns the resolver that turns directory credentials
// into a registered, active portal user.
func NewIdentityResolver(directory ports.DirectoryClient, users ports.UserRepository, log zerolog.Logger) ports.IdentityResolver {
	return &identityResolver{directory: directory, users: users, log: log}
}

// Resolve authenticates rawIdentity against the directory and loads the
// matching user. The returned user has normalized role and area.
func (r *identityResolver) Resolve(ctx context.Context, rawIdentity, secret string) (*domain.User, error) {
	// 1. Lookup key: the bare account name.
	username := domain.NormalizeIdentity(rawIdentity)
	if username == "" || secret == "" {
		return nil, domain.NewValidationError(msgCredentialsRequired)
	}

	// 2. The directory sees the identity exactly as typed.
	ok, err := r.directory.Authenticate(ctx, rawIdentity, secret)
	if err != nil {
		r.log.Error().Err(err).Str("user", username).Msg("directory authentication failed")
		return nil, domain.DirectoryFailure(err)
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Registration and status live in the relational store.
	user, err := r.users.FindByDirectoryUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnregisteredUser
		}
		return nil, domain.StoreFailure(err)
	}
	if !user.Active {
		return nil, domain.ErrInactiveUser
	}

	user.Normalize()
	return user, nil
}
