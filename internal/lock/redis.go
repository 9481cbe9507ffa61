package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	defaultTTL   = 5 * time.Second
	defaultRetry = 25 * time.Millisecond
	keyPrefix    = "barber-agenda:lock:"
)

// Deletes the key only while it still carries our token, so an expired
// lock re-acquired by someone else is never released by us.
var unlockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type Redis struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Redis{client: client, ttl: ttl, retry: defaultRetry}
}

// Connect parses url, pings the server and returns a ready client.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

func (r *Redis) Lock(ctx context.Context, key string) (Unlock, error) {
	name := keyPrefix + key
	token := uuid.NewString()

	for {
		ok, err := r.client.SetNX(ctx, name, token, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.retry):
		}
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = unlockScript.Run(releaseCtx, r.client, []string{name}, token).Err()
	}, nil
}
