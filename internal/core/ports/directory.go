package ports

import (
	"context"

	"github.com/intranet-portal/portal-api/internal/core/domain"
)

// DirectoryClient talks to the corporate directory service.
type DirectoryClient interface {
	// Authenticate binds with the given identity. A rejected bind returns
	// (false, nil); any other failure is returned as an error.
	Authenticate(ctx context.Context, identity, secret string) (bool, error)
	// FindUsers lists the person accounts matching an LDAP filter.
	FindUsers(ctx context.Context, filter string) ([]domain.DirectoryEntry, error)
}

// DirectorySync copies directory accounts into the relational store.
type DirectorySync interface {
	Run(ctx context.Context) (domain.SyncReport, error)
}
