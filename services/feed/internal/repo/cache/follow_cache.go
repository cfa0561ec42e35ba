package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"scroll-feed/pkg/logger"
	"scroll-feed/services/feed/internal/repo/persistent"
)

const followingKeyPrefix = "feed:following:"

// FollowCache reads a viewer's following set through redis. Redis failures
// fall back to the wrapped repository.
type FollowCache struct {
	next   persistent.FollowRepository
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

func NewFollowCache(next persistent.FollowRepository, client *redis.Client, ttl time.Duration, log *logger.Logger) *FollowCache {
	return &FollowCache{next: next, client: client, ttl: ttl, logger: log}
}

func followingKey(followerID string) string {
	return followingKeyPrefix + followerID
}

func (c *FollowCache) ListFollowing(ctx context.Context, followerID string) ([]string, error) {
	key := followingKey(followerID)

	cached, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		var ids []string
		if jsonErr := json.Unmarshal([]byte(cached), &ids); jsonErr == nil {
			return ids, nil
		}
		c.logger.Warn("Discarding unreadable following cache entry %s", key)
	case err != redis.Nil:
		c.logger.Warn("Following cache read failed for %s: %v", followerID, err)
	}

	ids, err := c.next.ListFollowing(ctx, followerID)
	if err != nil {
		return nil, err
	}

	if payload, jsonErr := json.Marshal(ids); jsonErr == nil {
		if setErr := c.client.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
			c.logger.Warn("Following cache write failed for %s: %v", followerID, setErr)
		}
	}
	return ids, nil
}

// Invalidate drops the cached following set, e.g. after a follow change.
func (c *FollowCache) Invalidate(ctx context.Context, followerID string) error {
	if err := c.client.Del(ctx, followingKey(followerID)).Err(); err != nil {
		return fmt.Errorf("invalidate following cache: %w", err)
	}
	return nil
}
