package redis

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

var ErrLockTimeout = errors.New("timed out waiting for lock")

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// PostLocker is a Locker shared by every instance of the service. A lock
// expires after TTL even if its holder never releases it.
type PostLocker struct {
	Client   *redis.Client
	TTL      time.Duration
	Wait     time.Duration
	Interval time.Duration
	Logger   *zap.Logger
}

func NewPostLocker(client *redis.Client, ttl time.Duration, logger *zap.Logger) *PostLocker {
	return &PostLocker{
		Client:   client,
		TTL:      ttl,
		Wait:     ttl,
		Interval: 25 * time.Millisecond,
		Logger:   logger,
	}
}

func (l *PostLocker) Lock(ctx context.Context, key string) (func(), error) {
	token, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	lockKey := "lock:" + key

	deadline := time.Now().Add(l.Wait)
	for {
		ok, err := l.Client.SetNX(ctx, lockKey, token.String(), l.TTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.Interval):
		}
	}

	return func() {
		// release even if the request context was cancelled meanwhile
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.Client, []string{lockKey}, token.String()).Err(); err != nil {
			l.Logger.Warn("could not release lock", zap.String("key", lockKey), zap.Error(err))
		}
	}, nil
}
