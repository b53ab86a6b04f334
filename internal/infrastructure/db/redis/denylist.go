package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist records revoked token identifiers in Redis. Keys expire with the
// token itself, so cleanup is free.
// Key format: revoked:<token_id>
type Denylist struct {
	client *redis.Client
}

// NewDenylist creates a Denylist wrapping the given Redis client.
func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

// Revoke marks the token identifier as revoked for ttl. Non-positive TTLs
// mean the token is already past expiry and nothing needs recording.
func (d *Denylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, d.key(tokenID), "1", ttl).Err()
}

// IsRevoked reports whether the token identifier has been revoked.
func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func (d *Denylist) key(tokenID string) string {
	return "revoked:" + tokenID
}
