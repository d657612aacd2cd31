package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a [RedisCache].
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// Prefix is prepended to every key, e.g. "jsonview:".
	Prefix string

	// DialTimeout bounds connection attempts. Zero uses 2s.
	DialTimeout time.Duration

	// Attempts is how often a command is tried when the network fails.
	// Zero uses 3.
	Attempts int

	// RetryDelay is the first pause between attempts; it doubles after
	// each one. Zero uses 100ms.
	RetryDelay time.Duration
}

// RedisCache stores entries in Redis using SET with expiry.
type RedisCache struct {
	client   *redis.Client
	prefix   string
	attempts int
	delay    time.Duration
}

// NewRedisCache connects to Redis and verifies the connection with PING.
// An unreachable server is reported as [ErrUnavailable].
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis: address is required")
	}
	timeout := cfg.DialTimeout
	if timeout == 0 {
		timeout = 2 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: timeout,
		MaxRetries:  -1,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis %s: %v", ErrUnavailable, cfg.Addr, err)
	}
	rc := &RedisCache{client: client, prefix: cfg.Prefix, attempts: cfg.Attempts, delay: cfg.RetryDelay}
	if rc.attempts <= 0 {
		rc.attempts = 3
	}
	if rc.delay <= 0 {
		rc.delay = 100 * time.Millisecond
	}
	return rc, nil
}

// Get retrieves a value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := c.do(ctx, func() error {
		b, err := c.client.Get(ctx, c.prefix+key).Bytes()
		if err != nil {
			return transient(err)
		}
		data = b
		return nil
	})
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value in Redis.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.do(ctx, func() error {
		return transient(c.client.Set(ctx, c.prefix+key, data, ttl).Err())
	})
}

// Delete removes a value from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return transient(c.client.Del(ctx, c.prefix+key).Err())
}

// Close closes the client connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// do runs cmd until it succeeds or fails with a non-transient error,
// at most c.attempts times with doubling pauses in between.
func (c *RedisCache) do(ctx context.Context, cmd func() error) error {
	delay := c.delay
	var err error
	for i := 0; i < c.attempts; i++ {
		if err = cmd(); err == nil || !isTransient(err) {
			return err
		}
		if i == c.attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}

var _ Cache = (*RedisCache)(nil)
