package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"medicine-finder-service/internal/domain"
	"medicine-finder-service/internal/platform/obs"
)

const defaultSearchTTL = 5 * time.Minute

// RedisSearchCache stores serialized search result lists keyed by the
// normalized query plus origin and radius. Entries expire on their own;
// there is no invalidation path.
type RedisSearchCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSearchCache(client *redis.Client, ttl time.Duration) *RedisSearchCache {
	if ttl <= 0 {
		ttl = defaultSearchTTL
	}
	return &RedisSearchCache{Client: client, TTL: ttl}
}

func (c *RedisSearchCache) Get(ctx context.Context, key string) (_ []domain.SearchResult, _ bool, err error) {
	defer obs.Time(ctx, "search.cache.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("search cache: client is nil")
	}

	raw, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get search cache: %w", err)
	}

	var results []domain.SearchResult
	if err := json.Unmarshal(raw, &results); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return nil, false, fmt.Errorf("get search cache: decode entry: %w", err)
	}

	return results, true, nil
}

func (c *RedisSearchCache) Put(ctx context.Context, key string, results []domain.SearchResult) (err error) {
	defer obs.Time(ctx, "search.cache.Put")(&err)

	if c.Client == nil {
		return errors.New("search cache: client is nil")
	}

	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("put search cache: encode entry: %w", err)
	}

	if err := c.Client.Set(ctx, key, raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("put search cache: %w", err)
	}

	return nil
}
