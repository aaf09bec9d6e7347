package identity

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRevoker keeps revoked token ids in redis until the token would have
// expired anyway
type RedisRevoker struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisRevoker creates a revoker on client
func NewRedisRevoker(client *redis.Client) *RedisRevoker {
	return &RedisRevoker{client: client, now: time.Now}
}

func revokedKey(tokenID string) string {
	return "revoked_token:" + tokenID
}

// Revoke implements Revoker
func (r *RedisRevoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedKey(tokenID), "1", ttl).Err()
}

// IsRevoked implements Revoker
func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
