// Package leaderboardresolver decides, on the consuming side, whether to reuse a
// locally cached snapshot, fetch a fresh one or fall back to sample data.
package leaderboardresolver

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/domain"
	"github.com/Black-And-White-Club/pizza-walk/app/observability/attr"
)

// CacheDuration is how long a cached snapshot is served without a network call.
const CacheDuration = 5 * time.Minute

// Status is the resolver's lifecycle state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// State is a point-in-time view of the resolver. Snapshot is nil unless Status is ready
// or a previous snapshot is still on screen while loading.
type State struct {
	Status    Status
	Snapshot  *leaderboarddomain.Snapshot
	Error     string
	FromCache bool
	Stale     bool
	// CachedAt is when the cached snapshot was written, zero if nothing is cached.
	CachedAt time.Time
}

// FallbackFunc produces data to show when both the server and the cache fail.
type FallbackFunc func(now time.Time) leaderboarddomain.Snapshot

// ConnectionError is returned by TestConnection when the server does not answer its probe.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string { return "Server not responding: " + e.Err.Error() }
func (e *ConnectionError) Unwrap() error { return e.Err }

// Option configures a Resolver.
type Option func(*Resolver)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// WithFallback replaces the sample data. A nil func means failures without a cache end in StatusError.
func WithFallback(fn FallbackFunc) Option {
	return func(r *Resolver) { r.fallback = fn }
}

// Resolver owns the two cache keys in its Storage.
type Resolver struct {
	source   Source
	storage  Storage
	logger   *slog.Logger
	now      func() time.Time
	fallback FallbackFunc

	mu    sync.Mutex
	state State
}

func NewResolver(source Source, storage Storage, logger *slog.Logger, opts ...Option) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{
		source:   source,
		storage:  storage,
		logger:   logger,
		now:      time.Now,
		fallback: SampleSnapshot,
		state:    State{Status: StatusIdle},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the current state.
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Resolver) setState(s State) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = s
	return s
}

// Load serves a valid cache entry without touching the network unless force is set.
// A forced load removes the cache before fetching.
func (r *Resolver) Load(ctx context.Context, force bool) State {
	r.mu.Lock()
	r.state = State{Status: StatusLoading, Snapshot: r.state.Snapshot}
	r.mu.Unlock()

	if !force {
		if entry, ok := r.readCache(ctx); ok && r.now().Sub(entry.capturedAt) < CacheDuration {
			r.logger.DebugContext(ctx, "Serving cached leaderboards", attr.Time("cached_at", entry.capturedAt))
			return r.setState(State{Status: StatusReady, Snapshot: &entry.snapshot, FromCache: true, CachedAt: entry.capturedAt})
		}
	} else {
		r.clearCache(ctx)
	}

	snap, err := r.source.FetchSnapshot(ctx)
	if err == nil {
		capturedAt := r.writeCache(ctx, snap)
		r.logger.InfoContext(ctx, "Leaderboards fetched", attr.String("source", string(snap.Metadata.Source)))
		return r.setState(State{Status: StatusReady, Snapshot: &snap, CachedAt: capturedAt})
	}

	msg := err.Error()
	r.logger.WarnContext(ctx, "Leaderboard fetch failed", attr.Error(err))

	if entry, ok := r.readCache(ctx); ok {
		return r.setState(State{Status: StatusReady, Snapshot: &entry.snapshot, Error: msg, FromCache: true, Stale: true, CachedAt: entry.capturedAt})
	}
	if r.fallback != nil {
		fb := r.fallback(r.now())
		return r.setState(State{Status: StatusReady, Snapshot: &fb, Error: msg})
	}
	return r.setState(State{Status: StatusError, Error: msg})
}

// Refresh is a forced Load.
func (r *Resolver) Refresh(ctx context.Context) State {
	return r.Load(ctx, true)
}

// TestConnection probes the server and then refreshes whatever the probe said.
// A failed probe is returned as a *ConnectionError and shown as the state's error.
func (r *Resolver) TestConnection(ctx context.Context) (State, error) {
	pingErr := r.source.Ping(ctx)
	if pingErr != nil {
		r.logger.WarnContext(ctx, "Connection test failed", attr.Error(pingErr))
	}

	state := r.Refresh(ctx)
	if pingErr == nil {
		return state, nil
	}

	connErr := &ConnectionError{Err: pingErr}
	r.mu.Lock()
	r.state.Error = connErr.Error()
	state = r.state
	r.mu.Unlock()
	return state, connErr
}

// ClearCache removes both cache keys.
func (r *Resolver) ClearCache(ctx context.Context) {
	r.clearCache(ctx)
}

type cacheEntry struct {
	snapshot   leaderboarddomain.Snapshot
	capturedAt time.Time
}

// readCache returns the stored entry regardless of age. Anything unreadable counts as absent.
func (r *Resolver) readCache(ctx context.Context) (cacheEntry, bool) {
	data, ok, err := r.storage.GetItem(DataKey)
	if err != nil || !ok {
		if err != nil {
			r.logger.WarnContext(ctx, "Reading leaderboard cache failed", attr.Error(err))
		}
		return cacheEntry{}, false
	}

	var snap leaderboarddomain.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		r.logger.WarnContext(ctx, "Ignoring corrupt leaderboard cache", attr.Error(err))
		return cacheEntry{}, false
	}

	entry := cacheEntry{snapshot: snap}
	if ts, ok, _ := r.storage.GetItem(TimestampKey); ok {
		if ms, err := strconv.ParseInt(ts, 10, 64); err == nil {
			entry.capturedAt = time.UnixMilli(ms)
		}
	}
	return entry, true
}

func (r *Resolver) writeCache(ctx context.Context, snap leaderboarddomain.Snapshot) time.Time {
	data, err := json.Marshal(snap)
	if err != nil {
		r.logger.WarnContext(ctx, "Encoding leaderboard cache failed", attr.Error(err))
		return time.Time{}
	}
	now := r.now()
	if err := r.storage.SetItem(DataKey, string(data)); err != nil {
		r.logger.WarnContext(ctx, "Writing leaderboard cache failed", attr.Error(err))
		return time.Time{}
	}
	if err := r.storage.SetItem(TimestampKey, strconv.FormatInt(now.UnixMilli(), 10)); err != nil {
		r.logger.WarnContext(ctx, "Writing leaderboard cache timestamp failed", attr.Error(err))
	}
	return now
}

func (r *Resolver) clearCache(ctx context.Context) {
	for _, key := range []string{DataKey, TimestampKey} {
		if err := r.storage.RemoveItem(key); err != nil {
			r.logger.WarnContext(ctx, "Removing leaderboard cache key failed", attr.String("key", key), attr.Error(err))
		}
	}
}
