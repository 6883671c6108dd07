// Package redis wraps the shared client behind the small key-value surface
// the idempotency layer needs: Get, Set, SetNX and Del on string values.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

var client *redis.Client

// Init connects the shared client from a redis:// URL and verifies the
// connection with a ping. A non-empty password overrides the one in the URL.
func Init(url, password string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return err
	}
	if password != "" {
		opts.Password = password
	}

	c := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		return err
	}

	client = c
	return nil
}

// SetClient swaps the shared client, letting tests point the package at
// miniredis.
func SetClient(c *redis.Client) {
	client = c
}

// Get returns the value stored at key. A missing key surfaces as redis.Nil
// so callers can tell "no cached response" from a connection failure.
func Get(ctx context.Context, key string) (string, error) {
	return client.Get(ctx, key).Result()
}

// Set stores value at key with the given TTL, overwriting any previous value.
func Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return client.Set(ctx, key, value, ttl).Err()
}

// SetNX stores value at key only if the key is absent, reporting whether the
// write won. This is the lock primitive behind duplicate-request detection.
func SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return client.SetNX(ctx, key, value, ttl).Result()
}

// Del drops key, releasing an idempotency lock early.
func Del(ctx context.Context, key string) error {
	return client.Del(ctx, key).Err()
}
