package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisOptions configures the Redis-backed store.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// Namespace prefixes every key, e.g. "storefront:default".
	Namespace string
	// TTL of each slot; zero keeps slots forever.
	TTL time.Duration
}

// Redis shares the local slots through a Redis server, so several clients
// running under the same profile see the same cart.
type Redis struct {
	client *redis.Client
	opts   RedisOptions
	logger *zap.Logger
}

func NewRedis(opts RedisOptions, logger *zap.Logger) (*Redis, error) {
	if opts.Addr == "" {
		return nil, errors.New("storage: REDIS_HOST not configured")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     4,
	})

	return &Redis{client: client, opts: opts, logger: logger}, nil
}

func (r *Redis) key(k string) string {
	if r.opts.Namespace == "" {
		return k
	}
	return fmt.Sprintf("%s:%s", r.opts.Namespace, k)
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("storage: get %q: %w", key, err)
	}
	return val, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, r.opts.TTL).Err(); err != nil {
		if isOOM(err) {
			err = fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		}
		return &WriteError{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return &WriteError{Op: "remove", Key: key, Err: err}
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	if _, err := r.client.Ping(ctx).Result(); err != nil {
		r.logger.Warn("⚠️ redis storage unreachable", zap.String("addr", r.opts.Addr), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// isOOM recognizes the error Redis returns when maxmemory is reached.
func isOOM(err error) bool {
	var rerr redis.Error
	if errors.As(err, &rerr) {
		return strings.HasPrefix(rerr.Error(), "OOM")
	}
	return false
}
