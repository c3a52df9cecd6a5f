package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	scanBatch   = 100
	dialTimeout = 5 * time.Second
)

// RedisCache is a store shared between processes. Values are JSON encoded
// under "<prefix>:<key>".
type RedisCache[V any] struct {
	client redis.UniversalClient
	prefix string
	pool   *workers
	logger *zap.Logger
}

// DialRedis connects to Redis and verifies the connection.
func DialRedis(addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("cache: redis ping failed: %w", err)
	}

	return client, nil
}

// NewRedisCache creates a Redis-backed store running asynchronous
// operations on at most n workers.
func NewRedisCache[V any](client redis.UniversalClient, prefix string, n int, logger *zap.Logger) *RedisCache[V] {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RedisCache[V]{
		client: client,
		prefix: prefix,
		pool:   newWorkers(n),
		logger: logger.Named("redis"),
	}
}

func (c *RedisCache[V]) key(k string) string {
	if c.prefix == "" {
		return k
	}

	return c.prefix + ":" + k
}

func (c *RedisCache[V]) unkey(k string) string {
	if c.prefix == "" {
		return k
	}

	return strings.TrimPrefix(k, c.prefix+":")
}

func (c *RedisCache[V]) pattern() string {
	if c.prefix == "" {
		return "*"
	}

	return c.prefix + ":*"
}

func encode[V any](v V) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cache: encode: %w", err)
	}

	return b, nil
}

func decode[V any](b []byte) (V, error) {
	var v V
	if err := json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("cache: decode: %w", err)
	}

	return v, nil
}

// Get retrieves the value stored under key.
func (c *RedisCache[V]) Get(key string) (V, bool, error) {
	var zero V

	b, err := c.client.Get(context.Background(), c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	}

	if err != nil {
		return zero, false, fmt.Errorf("cache: redis get: %w", err)
	}

	v, err := decode[V](b)
	if err != nil {
		return zero, false, err
	}

	return v, true, nil
}

// Put stores value under key.
func (c *RedisCache[V]) Put(key string, value V) error {
	b, err := encode(value)
	if err != nil {
		return err
	}

	if err := c.client.Set(context.Background(), c.key(key), b, 0).Err(); err != nil {
		return fmt.Errorf("cache: redis set: %w", err)
	}

	return nil
}

// Remove deletes key.
func (c *RedisCache[V]) Remove(key string) error {
	if err := c.client.Del(context.Background(), c.key(key)).Err(); err != nil {
		return fmt.Errorf("cache: redis del: %w", err)
	}

	return nil
}

func (c *RedisCache[V]) keys(ctx context.Context) ([]string, error) {
	var keys []string

	iter := c.client.Scan(ctx, 0, c.pattern(), scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("cache: redis scan: %w", err)
	}

	return keys, nil
}

// Clear removes every entry under the prefix.
func (c *RedisCache[V]) Clear() error {
	ctx := context.Background()

	keys, err := c.keys(ctx)
	if err != nil {
		return err
	}

	for start := 0; start < len(keys); start += scanBatch {
		end := min(start+scanBatch, len(keys))
		if err := c.client.Del(ctx, keys[start:end]...).Err(); err != nil {
			return fmt.Errorf("cache: redis del: %w", err)
		}
	}

	return nil
}

// Scan returns a copy of all entries under the prefix. Keys removed while
// scanning are skipped.
func (c *RedisCache[V]) Scan() ([]Entry[V], error) {
	ctx := context.Background()

	keys, err := c.keys(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry[V], 0, len(keys))
	for start := 0; start < len(keys); start += scanBatch {
		end := min(start+scanBatch, len(keys))
		batch := keys[start:end]

		values, err := c.client.MGet(ctx, batch...).Result()
		if err != nil {
			return nil, fmt.Errorf("cache: redis mget: %w", err)
		}

		for i, raw := range values {
			s, ok := raw.(string)
			if !ok {
				continue
			}

			v, err := decode[V]([]byte(s))
			if err != nil {
				return nil, err
			}

			entries = append(entries, Entry[V]{Key: c.unkey(batch[i]), Value: v})
		}
	}

	return entries, nil
}

// GetAsync retrieves the value stored under key on a worker.
func (c *RedisCache[V]) GetAsync(key string) Future[V] {
	return submit(c.pool, func() (V, bool, error) {
		return c.Get(key)
	})
}

// PutAsync stores value on a worker and resolves to the replaced value.
func (c *RedisCache[V]) PutAsync(key string, value V) Future[V] {
	return submit(c.pool, func() (V, bool, error) {
		var zero V

		b, err := encode(value)
		if err != nil {
			return zero, false, err
		}

		prior, err := c.client.GetSet(context.Background(), c.key(key), b).Bytes()
		if errors.Is(err, redis.Nil) {
			return zero, false, nil
		}

		if err != nil {
			return zero, false, fmt.Errorf("cache: redis getset: %w", err)
		}

		v, err := decode[V](prior)
		if err != nil {
			c.logger.Warn("replaced value is unreadable", zap.String("key", key), zap.Error(err))

			return zero, false, nil
		}

		return v, true, nil
	})
}

// RemoveAsync deletes key on a worker and resolves to whether it was present.
func (c *RedisCache[V]) RemoveAsync(key string) Future[bool] {
	return submit(c.pool, func() (bool, bool, error) {
		n, err := c.client.Del(context.Background(), c.key(key)).Result()
		if err != nil {
			return false, false, fmt.Errorf("cache: redis del: %w", err)
		}

		return n > 0, true, nil
	})
}

// Close waits for in-flight asynchronous operations and closes the client.
func (c *RedisCache[V]) Close() error {
	c.pool.close()

	if err := c.client.Close(); err != nil {
		return fmt.Errorf("cache: redis close: %w", err)
	}

	return nil
}
