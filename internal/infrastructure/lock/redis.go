package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	corelock "devinventory/internal/core/lock"
	"devinventory/pkg/logger"
)

const (
	defaultKeyPrefix = "devinventory:lock:"
	retryInterval    = 25 * time.Millisecond
)

// releaseScript deletes the key only while it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// RedisLocker serializes callers across processes sharing one Redis.
type RedisLocker struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
	wait      time.Duration
}

var _ corelock.Locker = (*RedisLocker)(nil)

// RedisLockerConfig configures RedisLocker.
type RedisLockerConfig struct {
	KeyPrefix string
	// TTL bounds how long a crashed holder can block the key.
	TTL time.Duration
	// Wait is the maximum time Lock spends retrying. Zero means until ctx is done.
	Wait time.Duration
}

// NewRedis creates a Redis-backed locker.
func NewRedis(client redis.UniversalClient, cfg RedisLockerConfig) *RedisLocker {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = defaultKeyPrefix
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Second
	}
	return &RedisLocker{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		ttl:       cfg.TTL,
		wait:      cfg.Wait,
	}
}

// Lock implements corelock.Locker using SET NX PX with a random token.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	fullKey := l.keyPrefix + key
	token := uuid.NewString()

	if l.wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, fullKey, token, l.ttl).Result()
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("redis lock %s: %w", key, err)
		}
		if ok {
			return l.unlockFunc(fullKey, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %v", corelock.ErrNotAcquired, key, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) unlockFunc(fullKey, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			// Release must not depend on the (possibly cancelled) request context.
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			if err := releaseScript.Run(ctx, l.client, []string{fullKey}, token).Err(); err != nil {
				logger.Warn(ctx, "redis lock release failed", "key", fullKey, "error", err)
			}
		})
	}
}
