package cms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisPrefix = "sitegen:cms:"

// RedisCache implements Cache on Redis. Entries are plain string keys; each
// tag is a set holding the keys it covers.
type RedisCache struct {
	client *redis.Client
}

// NewRedisClient opens a Redis client for the cache.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// NewRedisCache wraps an existing client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func entryKey(key string) string { return redisPrefix + "entry:" + key }

func tagKey(tag string) string { return redisPrefix + "tag:" + tag }

// Get returns the cached value, reporting a miss as ok=false.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, entryKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

// Set stores value and registers key under every tag.
func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) error {
	ek := entryKey(key)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, ek, value, ttl)
		for _, tag := range tags {
			pipe.SAdd(ctx, tagKey(tag), ek)
			if ttl > 0 {
				pipe.Expire(ctx, tagKey(tag), ttl)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// InvalidateTags deletes every entry registered under the tags and returns
// how many entries were removed.
func (r *RedisCache) InvalidateTags(ctx context.Context, tags ...string) (int, error) {
	removed := 0
	for _, tag := range tags {
		tk := tagKey(tag)
		keys, err := r.client.SMembers(ctx, tk).Result()
		if err != nil {
			return removed, fmt.Errorf("redis smembers %s: %w", tag, err)
		}
		if len(keys) > 0 {
			n, err := r.client.Del(ctx, keys...).Result()
			if err != nil {
				return removed, fmt.Errorf("redis del %s: %w", tag, err)
			}
			removed += int(n)
		}
		if err := r.client.Del(ctx, tk).Err(); err != nil {
			return removed, fmt.Errorf("redis del tag %s: %w", tag, err)
		}
	}
	return removed, nil
}

var _ Cache = (*RedisCache)(nil)
