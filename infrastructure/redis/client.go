// Package redis wraps the cache used for list responses. The cache is
// optional: when no Redis URL is configured the service runs without it.
package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"taskboard/pkg/logger"
)

const (
	fillLockTTL    = 10 * time.Second
	fillRetryDelay = 100 * time.Millisecond
)

type Config struct {
	URL      string
	Password string
	DB       int
}

type Client struct {
	rdb *redis.Client
}

func NewClient(cfg Config) (*Client, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.Password != "" {
		opt.Password = cfg.Password
	}
	if cfg.DB > 0 {
		opt.DB = cfg.DB
	}

	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Client{rdb: rdb}, nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// SetJSON stores a value as JSON with the given TTL.
func (c *Client) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, ttl).Err()
}

// GetJSON loads and unmarshals a value. Returns redis.Nil when absent.
func (c *Client) GetJSON(ctx context.Context, key string, target any) error {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

// SetNX stores a value only if the key does not exist. Lock keys use it.
func (c *Client) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, key, value, ttl).Result()
}

// AcquireLock tries to take the named lock. Returns false when another
// holder already has it.
func (c *Client) AcquireLock(ctx context.Context, lockKey string, ttl time.Duration) (bool, error) {
	return c.SetNX(ctx, lockKey, "1", ttl)
}

func (c *Client) ReleaseLock(ctx context.Context, lockKey string) error {
	return c.rdb.Del(ctx, lockKey).Err()
}

// GetOrSet serves key from the cache, or fills it from getter. Concurrent
// misses on one key collapse onto a single fill: the first caller takes a
// lock and runs the getter, the rest wait and re-read. Cache failures fall
// back to a direct getter call, so only getter errors propagate.
func (c *Client) GetOrSet(ctx context.Context, key string, target any, ttl time.Duration, getter func() (any, error)) error {
	err := c.GetJSON(ctx, key, target)
	if err == nil {
		return nil
	}
	if !IsMiss(err) {
		logger.WarnContext(ctx, "Cache read failed", "key", key, "error", err)
		return fillFromGetter(target, getter)
	}

	lockKey := "lock:" + key
	locked, err := c.AcquireLock(ctx, lockKey, fillLockTTL)
	if err != nil {
		logger.WarnContext(ctx, "Cache lock failed", "key", key, "error", err)
		return fillFromGetter(target, getter)
	}

	if !locked {
		// Another request is filling this key. Wait and re-read.
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(fillRetryDelay):
		}
		return c.GetOrSet(ctx, key, target, ttl, getter)
	}
	defer func() { _ = c.ReleaseLock(ctx, lockKey) }()

	// Double-check: the previous holder may have filled the key while we
	// waited on the lock.
	if err := c.GetJSON(ctx, key, target); err == nil {
		return nil
	}

	result, err := getter()
	if err != nil {
		return err
	}

	if err := c.SetJSON(ctx, key, result, ttl); err != nil {
		logger.WarnContext(ctx, "Cache write failed", "key", key, "error", err)
	}
	return copyJSON(result, target)
}

func fillFromGetter(target any, getter func() (any, error)) error {
	result, err := getter()
	if err != nil {
		return err
	}
	return copyJSON(result, target)
}

func copyJSON(value, target any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

// IsMiss reports whether err is a cache miss rather than a real failure.
func IsMiss(err error) bool {
	return err == redis.Nil
}

// DeletePattern removes every key matching the pattern. Mutations use it to
// drop all cached list variants at once.
func (c *Client) DeletePattern(ctx context.Context, pattern string) (int64, error) {
	var deleted int64
	var cursor uint64

	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			n, err := c.rdb.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, err
			}
			deleted += n
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}
