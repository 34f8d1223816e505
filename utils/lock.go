package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrScheduleLockHeld means another run currently owns the (provider, date)
// slot.
var ErrScheduleLockHeld = errors.New("schedule lock already held")

// releaseScript deletes the lease only while it still holds our token. The
// check and the delete run as one script, so a lease that expired and was
// re-acquired by another run in between is never deleted by the old owner.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisRunLock serializes scheduling runs per (provider, date) across service
// instances with a SETNX lease. The lease TTL guards against a crashed holder;
// release only deletes the key when the stored token still matches, so an
// expired lease taken over by another run is never released by the old owner.
type RedisRunLock struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisRunLock constructs a run lock on the given client.
func NewRedisRunLock(client *redis.Client) *RedisRunLock {
	return &RedisRunLock{Client: client, TTL: ScheduleLockTTL}
}

// Acquire takes the lease for a provider/date, returning a release func.
func (l *RedisRunLock) Acquire(ctx context.Context, providerID, date string) (func(), error) {
	key := fmt.Sprintf("%s%s:%s", ScheduleLockPrefix, providerID, date)
	token := uuid.New().String()

	ok, err := l.Client.SetNX(ctx, key, token, l.TTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire schedule lock: %w", err)
	}
	if !ok {
		return nil, ErrScheduleLockHeld
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, l.Client, []string{key}, token).Err()
	}
	return release, nil
}
