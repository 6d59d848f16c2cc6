package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	lockTTL      = 5 * time.Second
	lockWait     = 2 * time.Second
	lockInterval = 25 * time.Millisecond
)

// ErrLockTimeout is returned when a key stays held for longer than the wait limit.
var ErrLockTimeout = errors.New("lock wait timed out")

// releaseScript deletes the key only while it still holds our token, so an
// expired lock re-acquired by someone else is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// KeyLocker serialises upserts on the same logical key across API instances.
// Key format: lock:<key>
type KeyLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
}

// NewKeyLocker creates a KeyLocker wrapping the given Redis client.
func NewKeyLocker(client *redis.Client) *KeyLocker {
	return &KeyLocker{client: client, ttl: lockTTL, wait: lockWait}
}

// Acquire blocks until the key is free, ctx is done or the wait limit passes.
// The returned release func is safe to call more than once.
func (l *KeyLocker) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	name := l.key(key)

	deadline := time.Now().Add(l.wait)
	ticker := time.NewTicker(lockInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, name, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire %s: %w", name, err)
		}
		if ok {
			return l.releaser(name, token), nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("acquire %s: %w", name, ErrLockTimeout)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (l *KeyLocker) releaser(name, token string) func() {
	released := false
	return func() {
		if released {
			return
		}
		released = true
		ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()
		_ = releaseScript.Run(ctx, l.client, []string{name}, token).Err()
	}
}

func (l *KeyLocker) key(key string) string {
	return "lock:" + key
}
