// Package cache holds the redis-backed followed-id index used by feed
// composition. The service degrades to straight DB reads when redis is not
// configured, so every method tolerates a nil receiver.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/microblog/pkg/logger"
)

type FollowCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewFollowCache(rdb *redis.Client, ttl time.Duration) *FollowCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &FollowCache{rdb: rdb, ttl: ttl}
}

func key(userID int64) string { return fmt.Sprintf("following:ids:%d", userID) }

// FollowedIDs returns the cached followed-id list. ok is false on a miss, a
// redis error, or when the cache is disabled; callers fall through to the DB.
func (c *FollowCache) FollowedIDs(ctx context.Context, userID int64) ([]int64, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.LRange(ctx, key(userID), 0, -1).Result()
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	ids := make([]int64, 0, len(raw))
	for _, s := range raw {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			// poisoned entry; drop the key and treat as a miss
			_ = c.rdb.Del(ctx, key(userID)).Err()
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// Store replaces the cached list for a user. Empty follow sets are not
// cached; an empty redis list is indistinguishable from a miss anyway.
func (c *FollowCache) Store(ctx context.Context, userID int64, ids []int64) {
	if c == nil || c.rdb == nil || len(ids) == 0 {
		return
	}
	vals := make([]interface{}, len(ids))
	for i, id := range ids {
		vals[i] = strconv.FormatInt(id, 10)
	}
	pipe := c.rdb.Pipeline()
	pipe.Del(ctx, key(userID))
	pipe.RPush(ctx, key(userID), vals...)
	pipe.Expire(ctx, key(userID), c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("follow cache store failed", zap.Int64("user", userID), zap.Error(err))
	}
}

// Invalidate drops the cached list; called after follow/unfollow writes.
func (c *FollowCache) Invalidate(ctx context.Context, userID int64) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, key(userID)).Err(); err != nil {
		logger.Warn("follow cache invalidate failed", zap.Int64("user", userID), zap.Error(err))
	}
}
