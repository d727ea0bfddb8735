package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// unlockScript deletes the key only while it still holds the caller's token.
var unlockScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RunLock implements ports.RunLock using Redis SET NX with an expiry.
type RunLock struct {
	client *goredis.Client
	prefix string
}

// NewRunLock creates a new Redis-backed job lock.
func NewRunLock(client *goredis.Client) *RunLock {
	return &RunLock{
		client: client,
		prefix: "lock:",
	}
}

// TryLock takes the lock if nobody holds it.
// Returns the owner token and true on success, false if it is already held.
func (l *RunLock) TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	result, err := l.client.SetArgs(ctx, l.prefix+key, token, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis lock %s: %w", key, err)
	}
	return token, result == "OK", nil
}

// Unlock releases the lock if token still owns it. A lock that expired and was
// taken by another run is left alone.
func (l *RunLock) Unlock(ctx context.Context, key, token string) error {
	if err := unlockScript.Run(ctx, l.client, []string{l.prefix + key}, token).Err(); err != nil {
		return fmt.Errorf("redis unlock %s: %w", key, err)
	}
	return nil
}
