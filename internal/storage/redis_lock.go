package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLocked is returned when another import holds the lock.
var ErrLocked = errors.New("dataset is locked by another import")

// compare-and-delete so a lock that expired and was re-taken is not released by us
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLock serializes import runs that target the same dataset.
type RedisLock struct {
	rdb   *redis.Client
	key   string
	token string
	ttl   time.Duration
}

func lockKey(name string) string {
	return fmt.Sprintf("osint:lock:import:%s", name)
}

func NewRedisLock(rdb *redis.Client, name string, ttl time.Duration) *RedisLock {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &RedisLock{rdb: rdb, key: lockKey(name), token: uuid.NewString(), ttl: ttl}
}

// Key is the redis key guarding the dataset.
func (l *RedisLock) Key() string { return l.key }

func (l *RedisLock) Acquire(ctx context.Context) error {
	ok, err := l.rdb.SetNX(ctx, l.key, l.token, l.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w (%s)", ErrLocked, l.key)
	}
	return nil
}

func (l *RedisLock) Release(ctx context.Context) error {
	return releaseScript.Run(ctx, l.rdb, []string{l.key}, l.token).Err()
}

// Clear removes the lock whoever holds it. Used to recover from a crashed import.
func (l *RedisLock) Clear(ctx context.Context) (bool, error) {
	n, err := l.rdb.Del(ctx, l.key).Result()
	return n > 0, err
}
