package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/gabapcia/bcmonitor/internal/storage"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

const (
	lockKeyPrefix = "locks"

	// lockPollInterval is the wait between two acquisition attempts.
	lockPollInterval = 50 * time.Millisecond
)

// unlockScript deletes the lock only while it still holds the caller token.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// lockKey format: "locks:{resource}"
func lockKey(resource string) string {
	return fmt.Sprintf("%s:%s", lockKeyPrefix, resource)
}

// Lock acquires an exclusive lock on resource that expires after ttl. It
// polls until the lock is free or ctx is done, in which case it fails with
// storage.ErrLockTimeout.
//
// Parameters:
//   - ctx: bounds how long to wait for the lock.
//   - resource: name of the guarded resource.
//   - ttl: lifetime of the lock when it is never released.
//
// Returns:
//   - The function releasing the lock. Releasing an expired lock taken over
//     by someone else has no effect.
func (c *client) Lock(ctx context.Context, resource string, ttl time.Duration) (func(context.Context) error, error) {
	conn, err := c.db()
	if err != nil {
		return nil, err
	}

	key := lockKey(resource)
	token := uuid.NewString()

	ticker := time.NewTicker(lockPollInterval)
	defer ticker.Stop()

	for {
		ok, err := conn.SetNX(ctx, key, token, ttl).Result()
		if err != nil && ctx.Err() == nil {
			return nil, wrapErr(err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %w", storage.ErrLockTimeout, resource, ctx.Err())
		case <-ticker.C:
		}
	}

	unlock := func(ctx context.Context) error {
		conn, err := c.db()
		if err != nil {
			return err
		}
		return wrapErr(unlockScript.Run(ctx, conn, []string{key}, token).Err())
	}
	return unlock, nil
}
