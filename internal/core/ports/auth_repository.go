package ports

import (
	"context"
	"time"

	"github.com/intranet-portal/portal-api/internal/core/domain"
)

// UserRepository reads portal accounts from the relational store.
type UserRepository interface {
	// FindByDirectoryUsername matches case-insensitively. Returns
	// domain.ErrUserNotFound when no row exists.
	FindByDirectoryUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	ListActiveWithBirthDate(ctx context.Context) ([]domain.User, error)
	List(ctx context.Context, limit int) ([]domain.User, error)
}

// DirectoryAccount is the user data written by the directory sync job.
type DirectoryAccount struct {
	Username    string
	DisplayName string
	Email       string
	Active      bool
	RoleID      int64
	AreaID      *int64
}

// DirectoryRepository holds the idempotent writes used by the sync job.
type DirectoryRepository interface {
	UpsertRole(ctx context.Context, name string) (int64, error)
	UpsertArea(ctx context.Context, name string) (int64, error)
	UpsertUser(ctx context.Context, acct DirectoryAccount) error
}

// RevocationStore keeps revoked token ids until their expiry.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuditRepository records login attempts.
type AuditRepository interface {
	RecordLogin(ctx context.Context, attempt domain.LoginAttempt) error
}
