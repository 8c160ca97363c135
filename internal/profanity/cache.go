package profanity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "qanda:profanity:"

// CachedCensor memoizes censored text in Redis keyed by the SHA-256 of the input.
// Cache failures degrade to calling the wrapped Censor.
type CachedCensor struct {
	next   Censor
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedCensor wraps next with a Redis cache.
func NewCachedCensor(next Censor, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedCensor {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedCensor{next: next, client: client, ttl: ttl, logger: logger}
}

// Censor implements Censor.
func (c *CachedCensor) Censor(ctx context.Context, text string) (string, error) {
	key := cacheKey(text)
	cached, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		return cached, nil
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("profanity cache read", slog.Any("error", err))
	}

	censored, err := c.next.Censor(ctx, text)
	if err != nil {
		return "", err
	}
	if err := c.client.Set(ctx, key, censored, c.ttl).Err(); err != nil {
		c.logger.Warn("profanity cache write", slog.Any("error", err))
	}
	return censored, nil
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
