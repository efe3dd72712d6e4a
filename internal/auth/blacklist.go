package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/massagehub/booking-api/internal/config"
)

const blacklistKeyPrefix = "blacklist:token:"

// Blacklist revokes session tokens before their natural expiry. Logout
// stores the token id here; the auth middleware refuses anything listed.
type Blacklist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type RedisBlacklist struct {
	client *redis.Client
}

func NewRedisBlacklist(cfg *config.Config) *RedisBlacklist {
	return &RedisBlacklist{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		}),
	}
}

func (b *RedisBlacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, blacklistKeyPrefix+tokenID, "1", ttl).Err()
}

func (b *RedisBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKeyPrefix+tokenID).Result()
	if err != nil {
		// fail open: a cache outage must not lock every session out
		return false, nil
	}
	return n > 0, nil
}

var _ Blacklist = (*RedisBlacklist)(nil)
