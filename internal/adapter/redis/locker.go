package redisadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"mesa-campaigns/internal/core/port"
)

const keyPrefix = "mesa:lock:"

var (
	unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

	refreshScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`)
)

// Connect initializes a Redis client from URL or host:port input.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt := &redis.Options{Addr: redisURL}
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		var err error
		if opt, err = redis.ParseURL(redisURL); err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Locker implements port.Locker with SET NX keys so that several service
// instances serialise work on the same campaign. A held lock is refreshed
// in the background until it is released.
type Locker struct {
	client redis.UniversalClient
	ttl    time.Duration
	retry  time.Duration
	log    *slog.Logger
}

var _ port.Locker = (*Locker)(nil)

// NewLocker creates a locker whose keys expire after ttl unless refreshed.
// Contended locks are polled every retry interval.
func NewLocker(client redis.UniversalClient, ttl, retry time.Duration, log *slog.Logger) *Locker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if retry <= 0 {
		retry = 50 * time.Millisecond
	}
	return &Locker{client: client, ttl: ttl, retry: retry, log: log}
}

// Lock blocks until key is acquired or ctx is done.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := keyPrefix + key
	token := uuid.NewString()

	t := time.NewTicker(l.retry)
	defer t.Stop()
	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go l.refresh(redisKey, token, stop, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
			ctx, cancel := context.WithTimeout(context.Background(), l.ttl)
			defer cancel()
			if err := unlockScript.Run(ctx, l.client, []string{redisKey}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
				l.log.Warn("failed to release lock", slog.String("key", key), slog.Any("error", err))
			}
		})
	}, nil
}

func (l *Locker) refresh(redisKey, token string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	t := time.NewTicker(l.ttl / 3)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			ctx, cancel := context.WithTimeout(context.Background(), l.ttl/3)
			n, err := refreshScript.Run(ctx, l.client, []string{redisKey}, token, l.ttl.Milliseconds()).Int()
			cancel()
			if err != nil {
				l.log.Warn("failed to refresh lock", slog.String("key", redisKey), slog.Any("error", err))
				continue
			}
			if n == 0 {
				l.log.Error("lock lost before release", slog.String("key", redisKey))
				return
			}
		}
	}
}
