package leaderboardcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/domain"
	"github.com/go-redis/redis/v8"
)

// SnapshotKey is where the live snapshot is stored in Redis.
const SnapshotKey = "pizzawalk:leaderboard:snapshot"

// redisClient is the part of *redis.Client the cache uses.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisCache shares the snapshot between API replicas. Expiry is left to Redis.
type RedisCache struct {
	client redisClient
	key    string
}

func NewRedisCache(client redisClient) *RedisCache {
	return &RedisCache{client: client, key: SnapshotKey}
}

func (c *RedisCache) Get(ctx context.Context) (leaderboarddomain.Snapshot, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return leaderboarddomain.Snapshot{}, false, nil
	}
	if err != nil {
		return leaderboarddomain.Snapshot{}, false, fmt.Errorf("redis get snapshot: %w", err)
	}
	var snap leaderboarddomain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return leaderboarddomain.Snapshot{}, false, fmt.Errorf("decode cached snapshot: %w", err)
	}
	return snap, true, nil
}

func (c *RedisCache) Set(ctx context.Context, snap leaderboarddomain.Snapshot, ttl time.Duration) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := c.client.Set(ctx, c.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set snapshot: %w", err)
	}
	return nil
}

func (c *RedisCache) Clear(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("redis clear snapshot: %w", err)
	}
	return nil
}

func (c *RedisCache) Backend() string { return "redis" }
