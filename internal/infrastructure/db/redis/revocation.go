package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/intranet-portal/portal-api/internal/core/ports"
)

const revokedPrefix = "portal:revoked:"

// RevocationStore keeps revoked token ids in Redis until the token would
// have expired anyway. Key format: portal:revoked:<jti>
type RevocationStore struct {
	client redis.Cmdable
	now    func() time.Time
}

var _ ports.RevocationStore = (*RevocationStore)(nil)

func NewRevocationStore(client redis.Cmdable) *RevocationStore {
	return &RevocationStore{client: client, now: time.Now}
}

// Revoke marks tokenID as revoked until the given time. Tokens that already
// expired are not stored.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func key(tokenID string) string {
	return revokedPrefix + tokenID
}
