// internal/domain/stats/cache.go
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// cache wraps Redis for page-data bundles. Aggregates are cheap enough to
// recompute; the cache only exists to absorb the dashboards' polling, so a
// Redis failure degrades to a direct read, never an error.
type cache struct {
	client *redis.Client
	ttl    time.Duration
}

func newCache(client *redis.Client, ttl time.Duration) *cache {
	return &cache{client: client, ttl: ttl}
}

func (c *cache) get(ctx context.Context, key string, dest interface{}) bool {
	if c.client == nil {
		return false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("discarding undecodable stats cache entry")
		return false
	}
	return true
}

func (c *cache) set(ctx context.Context, key string, value interface{}) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("failed to cache stats bundle")
	}
}

func adminKey(page string) string {
	return fmt.Sprintf("page-data:admin:%s", page)
}

func resellerKey(resellerID uint, page string) string {
	return fmt.Sprintf("page-data:reseller:%d:%s", resellerID, page)
}
