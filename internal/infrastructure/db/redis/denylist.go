package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist tracks account ids whose tokens must no longer be honoured.
// Tokens are stateless, so deleting an account leaves its already-issued
// tokens valid until expiry; recording the id here for the token TTL closes
// that window. Key format: denylist:<account_id>
type Denylist struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDenylist creates a Denylist whose entries expire after ttl. Use the
// token TTL: once every token issued before the revocation has expired on
// its own, the entry has nothing left to block.
func NewDenylist(client *redis.Client, ttl time.Duration) *Denylist {
	return &Denylist{client: client, ttl: ttl}
}

// Revoke records that tokens for accountID must be rejected.
func (d *Denylist) Revoke(ctx context.Context, accountID string) error {
	return d.client.Set(ctx, d.key(accountID), "1", d.ttl).Err()
}

// IsRevoked reports whether tokens for accountID have been revoked.
func (d *Denylist) IsRevoked(ctx context.Context, accountID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(accountID)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func (d *Denylist) key(accountID string) string {
	return "denylist:" + accountID
}
