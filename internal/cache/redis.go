package cache

import (
	"context"
	"log"
	"time"

	customError "github.com/ujjiboni/dashboard/pkg/errors"

	"github.com/redis/go-redis/v9"
)

const (
	entryPrefix = "ujjiboni:query:"
	indexPrefix = "ujjiboni:query-index:"
)

// RedisCache shares query results between service instances. Each resource
// keeps an index set of its entry keys so it can be invalidated as a whole.
type RedisCache struct {
	client    *redis.Client
	staleTime time.Duration
}

func NewRedisCache(client *redis.Client, staleTime time.Duration) *RedisCache {
	return &RedisCache{client: client, staleTime: staleTime}
}

func (c *RedisCache) Get(ctx context.Context, key Key) ([]byte, bool) {
	data, err := c.client.Get(ctx, entryPrefix+key.String()).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("RedisCache: read error for key %s: %v", key, err)
		}
		return nil, false
	}
	return data, true
}

// Set stores value; write errors are logged because a cache miss is not fatal.
func (c *RedisCache) Set(ctx context.Context, key Key, value []byte) {
	entryKey := entryPrefix + key.String()
	indexKey := indexPrefix + key.Resource

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, entryKey, value, c.staleTime)
	pipe.SAdd(ctx, indexKey, entryKey)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("RedisCache: write error for key %s: %v", key, err)
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, resources ...string) error {
	for _, resource := range resources {
		indexKey := indexPrefix + resource
		keys, err := c.client.SMembers(ctx, indexKey).Result()
		if err != nil {
			return customError.WrapCacheError(err)
		}
		keys = append(keys, indexKey)
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return customError.WrapCacheError(err)
		}
	}
	return nil
}

func (c *RedisCache) InvalidateAll(ctx context.Context) error {
	for _, pattern := range []string{entryPrefix + "*", indexPrefix + "*"} {
		iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return customError.WrapCacheError(err)
		}
		if len(keys) == 0 {
			continue
		}
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return customError.WrapCacheError(err)
		}
	}
	return nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
