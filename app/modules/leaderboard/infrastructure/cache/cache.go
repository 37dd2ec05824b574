// Package leaderboardcache holds the server side snapshot cache backends.
package leaderboardcache

import (
	"context"
	"sync"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/domain"
)

// SnapshotCache stores the most recent live snapshot.
type SnapshotCache interface {
	Get(ctx context.Context) (leaderboarddomain.Snapshot, bool, error)
	Set(ctx context.Context, snap leaderboarddomain.Snapshot, ttl time.Duration) error
	Clear(ctx context.Context) error
	Backend() string
}

// MemoryCache keeps the snapshot in process.
type MemoryCache struct {
	mu      sync.RWMutex
	snap    leaderboarddomain.Snapshot
	expires time.Time
	ok      bool
	now     func() time.Time
}

// NewMemoryCache returns an empty in-process cache. A nil clock uses time.Now.
func NewMemoryCache(now func() time.Time) *MemoryCache {
	if now == nil {
		now = time.Now
	}
	return &MemoryCache{now: now}
}

func (c *MemoryCache) Get(_ context.Context) (leaderboarddomain.Snapshot, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.ok || !c.now().Before(c.expires) {
		return leaderboarddomain.Snapshot{}, false, nil
	}
	return c.snap.Clone(), true, nil
}

func (c *MemoryCache) Set(_ context.Context, snap leaderboarddomain.Snapshot, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = snap.Clone()
	c.expires = c.now().Add(ttl)
	c.ok = true
	return nil
}

func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = leaderboarddomain.Snapshot{}
	c.ok = false
	return nil
}

func (c *MemoryCache) Backend() string { return "memory" }
