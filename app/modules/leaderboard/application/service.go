package leaderboardservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/pizza-walk/app/events"
	leaderboarddomain "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/domain"
	leaderboardcache "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/infrastructure/cache"
	"github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/infrastructure/roblox"
	"github.com/Black-And-White-Club/pizza-walk/app/observability/attr"
	leaderboardmetrics "github.com/Black-And-White-Club/pizza-walk/app/observability/metrics/leaderboard"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

const (
	snapshotFlightKey     = "snapshot"
	defaultRefreshTimeout = 30 * time.Second
)

// Publisher is the slice of the event bus the service needs.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// Config carries the upstream settings the service acts on.
type Config struct {
	HasCredentials    bool
	APIKey            string
	UniverseID        string
	PageSize          int
	LookupConcurrency int
	CacheTTL          time.Duration
	ProbeDelay        time.Duration
	// RefreshTimeout bounds one shared aggregation, independent of any caller.
	RefreshTimeout time.Duration
}

// LeaderboardService implements the Service interface.
type LeaderboardService struct {
	client    roblox.Client
	cache     leaderboardcache.SnapshotCache
	publisher Publisher
	cfg       Config
	logger    *slog.Logger
	metrics   leaderboardmetrics.LeaderboardMetrics
	tracer    trace.Tracer
	group     singleflight.Group
	now       func() time.Time
}

// NewLeaderboardService creates a new LeaderboardService. cache and publisher may be nil.
func NewLeaderboardService(
	client roblox.Client,
	cache leaderboardcache.SnapshotCache,
	publisher Publisher,
	cfg Config,
	logger *slog.Logger,
	metrics leaderboardmetrics.LeaderboardMetrics,
	tracer trace.Tracer,
) *LeaderboardService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = leaderboardmetrics.NewNoop()
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if cfg.LookupConcurrency <= 0 {
		cfg.LookupConcurrency = leaderboarddomain.MaxEntries
	}
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = defaultRefreshTimeout
	}
	return &LeaderboardService{
		client:    client,
		cache:     cache,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		now:       time.Now,
	}
}

func (s *LeaderboardService) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if s.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return s.tracer.Start(ctx, "LeaderboardService."+name)
}

// GetLeaderboards serves the cached live snapshot when there is one, otherwise aggregates.
func (s *LeaderboardService) GetLeaderboards(ctx context.Context) leaderboarddomain.Snapshot {
	ctx, span := s.startSpan(ctx, "GetLeaderboards")
	defer span.End()

	if snap, ok := s.cached(ctx); ok {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return snap
	}
	return s.collapsedRefresh(ctx)
}

// Refresh bypasses the cache and aggregates fresh data.
func (s *LeaderboardService) Refresh(ctx context.Context) leaderboarddomain.Snapshot {
	ctx, span := s.startSpan(ctx, "Refresh")
	defer span.End()
	return s.collapsedRefresh(ctx)
}

// ClearCache drops the cached snapshot so the next request aggregates.
func (s *LeaderboardService) ClearCache(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "ClearCache")
	defer span.End()

	if s.cache == nil {
		return nil
	}
	if err := s.cache.Clear(ctx); err != nil {
		span.RecordError(err)
		return err
	}
	s.logger.InfoContext(ctx, "Leaderboard cache cleared", attr.ExtractCorrelationID(ctx))
	return nil
}

func (s *LeaderboardService) cached(ctx context.Context) (leaderboarddomain.Snapshot, bool) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return leaderboarddomain.Snapshot{}, false
	}
	snap, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Leaderboard cache read failed", attr.String("backend", s.cache.Backend()), attr.Error(err))
		return leaderboarddomain.Snapshot{}, false
	}
	s.metrics.RecordCacheResult(ctx, ok)
	if !ok {
		return leaderboarddomain.Snapshot{}, false
	}
	snap.Metadata.Cached = true
	return snap, true
}

// collapsedRefresh shares one aggregation between concurrent callers. The shared work
// is detached from the caller that started it; each caller only stops waiting when its
// own context ends.
func (s *LeaderboardService) collapsedRefresh(ctx context.Context) leaderboarddomain.Snapshot {
	if err := ctx.Err(); err != nil {
		return s.abandonedSnapshot(err)
	}
	ch := s.group.DoChan(snapshotFlightKey, func() (any, error) {
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.RefreshTimeout)
		defer cancel()
		return s.refresh(refreshCtx), nil
	})
	select {
	case res := <-ch:
		return res.Val.(leaderboarddomain.Snapshot).Clone()
	case <-ctx.Done():
		return s.abandonedSnapshot(ctx.Err())
	}
}

// abandonedSnapshot answers a caller that went away before the shared refresh finished.
// Nothing is cached, published or recorded for it.
func (s *LeaderboardService) abandonedSnapshot(err error) leaderboarddomain.Snapshot {
	return leaderboarddomain.FallbackSnapshot(leaderboarddomain.SourceError, err.Error(), s.now())
}

func (s *LeaderboardService) refresh(ctx context.Context) leaderboarddomain.Snapshot {
	snap := s.aggregate(ctx)
	meta := snap.Metadata

	s.metrics.RecordSnapshot(ctx, string(meta.Source))
	s.metrics.RecordAggregationDuration(ctx, time.Duration(meta.ResponseTimeMs)*time.Millisecond)
	s.logger.InfoContext(ctx, "Leaderboard snapshot built",
		attr.ExtractCorrelationID(ctx),
		attr.String("source", string(meta.Source)),
		attr.Int("successful_categories", meta.SuccessfulCategories),
		attr.String("response_time", meta.ResponseTime),
	)

	if meta.Source.IsLive() && s.cache != nil && s.cfg.CacheTTL > 0 {
		if err := s.cache.Set(ctx, snap, s.cfg.CacheTTL); err != nil {
			s.logger.WarnContext(ctx, "Leaderboard cache write failed", attr.String("backend", s.cache.Backend()), attr.Error(err))
		}
	}

	if s.publisher != nil {
		payload := events.LeaderboardSnapshotRefreshedPayload{
			Source:               string(meta.Source),
			Connected:            meta.Connected,
			SuccessfulCategories: meta.SuccessfulCategories,
			TotalCategories:      meta.TotalCategories,
			ResponseTimeMs:       meta.ResponseTimeMs,
			RefreshedAt:          s.now().UTC(),
		}
		if len(meta.CategoryErrors) > 0 {
			payload.CategoryErrors = make(map[string]string, len(meta.CategoryErrors))
			for k, v := range meta.CategoryErrors {
				payload.CategoryErrors[string(k)] = v
			}
		}
		if err := s.publisher.Publish(ctx, events.LeaderboardSnapshotRefreshedV1, payload); err != nil {
			s.logger.WarnContext(ctx, "Failed to publish snapshot event", attr.Error(err))
		}
	}
	return snap
}
