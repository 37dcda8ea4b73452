package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var _ Cache = (*Redis)(nil)

// Redis is a Cache backed by a Redis server. Values are stored as JSON.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis connects to the server at addr and verifies it with PING.
// Every key is stored under prefix.
func NewRedis(ctx context.Context, addr, prefix string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "failed to ping Redis")
	}

	return &Redis{client: client, prefix: prefix}, nil
}

func (c *Redis) key(k string) string {
	return c.prefix + k
}

func (c *Redis) Get(ctx context.Context, key string, dst interface{}) error {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		return errors.Wrap(err, "failed to get from cache")
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return errors.Wrap(err, "failed to unmarshal cache value")
	}
	return nil
}

func (c *Redis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "failed to marshal cache value")
	}

	if err := c.client.Set(ctx, c.key(key), data, ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to set cache value")
	}
	return nil
}

func (c *Redis) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return errors.Wrap(err, "failed to delete from cache")
	}
	return nil
}

// Close closes the client connection pool.
func (c *Redis) Close() error {
	return c.client.Close()
}
