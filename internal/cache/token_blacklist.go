// Package cache holds the redis-backed token blacklist used by logout.
package cache

import (
	"context"
	"time"

	"djibtrade/config"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist records revoked access token IDs until their natural
// expiry. A nil *TokenBlacklist is valid and blacklists nothing, so the
// server runs without redis in development.
type TokenBlacklist struct {
	client *redis.Client
}

// NewTokenBlacklist connects to redis; returns nil when no address is
// configured or the server is unreachable (logout then only drops the
// client-side tokens).
func NewTokenBlacklist(cfg *config.RedisConfig) *TokenBlacklist {
	if cfg.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return &TokenBlacklist{client: client}
}

func (b *TokenBlacklist) key(tokenID string) string {
	return "blacklist:token:" + tokenID
}

// Revoke blacklists the token ID for ttl (the token's remaining lifetime).
func (b *TokenBlacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if b == nil || tokenID == "" || ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, b.key(tokenID), "revoked", ttl).Err()
}

// IsRevoked reports whether the token ID has been blacklisted. Errors count
// as not revoked; an unreachable redis must not lock every user out.
func (b *TokenBlacklist) IsRevoked(ctx context.Context, tokenID string) bool {
	if b == nil || tokenID == "" {
		return false
	}
	n, err := b.client.Exists(ctx, b.key(tokenID)).Result()
	return err == nil && n > 0
}
