package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds our token, so a
// holder whose lock expired cannot release the next holder's lock.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// RedisLocker is a Locker shared by every process using the same Redis.
type RedisLocker struct {
	client   redis.Cmdable
	config   Config
	logger   *slog.Logger
	newToken func() string
}

// NewRedisLocker creates a locker on client.
func NewRedisLocker(client redis.Cmdable, cfg Config, logger *slog.Logger) *RedisLocker {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisLocker{
		client:   client,
		config:   cfg.withDefaults(),
		logger:   logger,
		newToken: func() string { return uuid.NewString() },
	}
}

// Acquire takes the lock for key, retrying until the configured wait runs
// out or ctx is done.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	redisKey := l.config.Prefix + key
	token := l.newToken()
	deadline := time.Now().Add(l.config.Wait)

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.config.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			l.logger.Debug("lock acquired", "key", redisKey)
			return l.releaser(redisKey, token), nil
		}

		if !time.Now().Before(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrNotAcquired, key)
		}

		timer := time.NewTimer(l.config.RetryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (l *RedisLocker) releaser(redisKey, token string) func(context.Context) error {
	return func(ctx context.Context) error {
		deleted, err := l.client.Eval(ctx, releaseScript, []string{redisKey}, token).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("failed to release lock %s: %w", redisKey, err)
		}
		if deleted == 0 {
			l.logger.Warn("lock expired before release", "key", redisKey)
			return ErrLost
		}
		return nil
	}
}
