// Package redislock serializes cart mutations per customer with a Redis
// lock. The lock is advisory: the cart's version check still catches writers
// that slip past it, the lock just keeps the common path free of retries.
package redislock

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	keyPrefix = "cart-lock:"

	// lockTTL bounds how long a crashed holder can block a customer.
	lockTTL = 10 * time.Second

	retryInterval = 50 * time.Millisecond
)

// releaseScript deletes the key only if this locker still owns it, so a
// holder whose TTL expired cannot release the next holder's lock.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisCartLocker implements CartLocker with SET NX plus a TTL.
type RedisCartLocker struct {
	client *redis.Client
}

func NewRedisCartLocker(client *redis.Client) (*RedisCartLocker, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	return &RedisCartLocker{client: client}, nil
}

// Acquire polls SET NX until the lock is taken or ctx expires. The returned
// release function is safe to call after the TTL has already expired.
func (l *RedisCartLocker) Acquire(ctx context.Context, customerID kernel.UUID) (func(), error) {
	key := keyPrefix + customerID.String()
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return nil, errs.NewDependencyFailureError(fmt.Sprintf("acquire cart lock %s", key), err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, errs.NewDependencyFailureError(fmt.Sprintf("acquire cart lock %s", key), ctx.Err())
		case <-time.After(retryInterval):
		}
	}

	release := func() {
		// Releasing is best effort: the TTL reaps the key if Redis is
		// unreachable here.
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err()
	}

	return release, nil
}
