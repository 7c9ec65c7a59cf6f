// Copyright (c) 2026 Kuramono. All rights reserved.

package archive

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisGateway implements [Gateway] on a Redis key-value store.
//
// Each logical key holds one JSON document with no TTL: the archive is the
// authoritative copy, not a cache.
type RedisGateway struct {
	client *redis.Client
}

// NewRedisGateway creates a Redis-backed [Gateway].
func NewRedisGateway(client *redis.Client) *RedisGateway {
	return &RedisGateway{client: client}
}

/*
Load returns the document stored under key.

Returns:
  - []byte: Raw JSON document, nil when the key is absent
  - error: Connectivity errors
*/
func (gateway *RedisGateway) Load(ctx context.Context, key string) ([]byte, error) {
	raw, err := gateway.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_gateway_load_failed: %w", err)
	}
	return raw, nil
}

/*
Save stores the document under key, replacing any previous value.

Returns:
  - error: Connectivity or write errors
*/
func (gateway *RedisGateway) Save(ctx context.Context, key string, value []byte) error {
	if err := gateway.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis_gateway_save_failed: %w", err)
	}
	return nil
}

// Ping verifies the Redis connection is healthy.
func (gateway *RedisGateway) Ping(ctx context.Context) error {
	if err := gateway.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis_gateway_ping_failed: %w", err)
	}
	return nil
}
