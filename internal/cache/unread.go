// Package cache holds the unread-notification counter cache. Counts are
// cached per user and invalidated whenever a notification is delivered or
// marked read, so the badge endpoint stays cheap.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// UnreadCache caches unread notification counts per user. Get returns
// (count, true) on a hit and (0, false) on a miss.
type UnreadCache interface {
	Get(ctx context.Context, userID uint64) (int64, bool, error)
	Set(ctx context.Context, userID uint64, count int64) error
	Invalidate(ctx context.Context, userID uint64) error
}

const unreadTTL = 10 * time.Minute

// RedisUnreadCache is the production implementation.
type RedisUnreadCache struct {
	client *redis.Client
}

func NewRedisUnreadCache(client *redis.Client) *RedisUnreadCache {
	return &RedisUnreadCache{client: client}
}

func (c *RedisUnreadCache) Get(ctx context.Context, userID uint64) (int64, bool, error) {
	count, err := c.client.Get(ctx, unreadKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read unread count: %w", err)
	}
	return count, true, nil
}

func (c *RedisUnreadCache) Set(ctx context.Context, userID uint64, count int64) error {
	return c.client.Set(ctx, unreadKey(userID), count, unreadTTL).Err()
}

func (c *RedisUnreadCache) Invalidate(ctx context.Context, userID uint64) error {
	return c.client.Del(ctx, unreadKey(userID)).Err()
}

func unreadKey(userID uint64) string {
	return fmt.Sprintf("unread:%d", userID)
}

// MemoryUnreadCache is a map-backed implementation for tests and single-node
// development runs.
type MemoryUnreadCache struct {
	mu     sync.RWMutex
	counts map[uint64]int64
}

func NewMemoryUnreadCache() *MemoryUnreadCache {
	return &MemoryUnreadCache{counts: make(map[uint64]int64)}
}

func (c *MemoryUnreadCache) Get(ctx context.Context, userID uint64) (int64, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	count, ok := c.counts[userID]
	return count, ok, nil
}

func (c *MemoryUnreadCache) Set(ctx context.Context, userID uint64, count int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[userID] = count
	return nil
}

func (c *MemoryUnreadCache) Invalidate(ctx context.Context, userID uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.counts, userID)
	return nil
}
