// Package leaderboardmetrics records leaderboard aggregation metrics.
package leaderboardmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LeaderboardMetrics is the set of measurements taken by the leaderboard module.
type LeaderboardMetrics interface {
	RecordUpstreamRequest(ctx context.Context, category, outcome string)
	RecordUsernameLookup(ctx context.Context, outcome string)
	RecordSnapshot(ctx context.Context, source string)
	RecordAggregationDuration(ctx context.Context, d time.Duration)
	RecordCacheResult(ctx context.Context, hit bool)
}

type prometheusMetrics struct {
	upstream  *prometheus.CounterVec
	lookups   *prometheus.CounterVec
	snapshots *prometheus.CounterVec
	duration  prometheus.Histogram
	cache     *prometheus.CounterVec
}

// NewPrometheus registers the leaderboard collectors on reg.
func NewPrometheus(reg prometheus.Registerer) LeaderboardMetrics {
	m := &prometheusMetrics{
		upstream: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pizzawalk",
			Subsystem: "leaderboard",
			Name:      "upstream_requests_total",
			Help:      "Ordered data store queries by category and outcome.",
		}, []string{"category", "outcome"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pizzawalk",
			Subsystem: "leaderboard",
			Name:      "username_lookups_total",
			Help:      "Display name lookups by outcome.",
		}, []string{"outcome"}),
		snapshots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pizzawalk",
			Subsystem: "leaderboard",
			Name:      "snapshots_total",
			Help:      "Snapshots produced by source.",
		}, []string{"source"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pizzawalk",
			Subsystem: "leaderboard",
			Name:      "aggregation_duration_seconds",
			Help:      "Wall clock time of a full leaderboard aggregation.",
			Buckets:   prometheus.DefBuckets,
		}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pizzawalk",
			Subsystem: "leaderboard",
			Name:      "cache_requests_total",
			Help:      "Server snapshot cache lookups by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.upstream, m.lookups, m.snapshots, m.duration, m.cache)
	return m
}

func (m *prometheusMetrics) RecordUpstreamRequest(_ context.Context, category, outcome string) {
	m.upstream.WithLabelValues(category, outcome).Inc()
}

func (m *prometheusMetrics) RecordUsernameLookup(_ context.Context, outcome string) {
	m.lookups.WithLabelValues(outcome).Inc()
}

func (m *prometheusMetrics) RecordSnapshot(_ context.Context, source string) {
	m.snapshots.WithLabelValues(source).Inc()
}

func (m *prometheusMetrics) RecordAggregationDuration(_ context.Context, d time.Duration) {
	m.duration.Observe(d.Seconds())
}

func (m *prometheusMetrics) RecordCacheResult(_ context.Context, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cache.WithLabelValues(result).Inc()
}

type noop struct{}

// NewNoop returns metrics that discard every measurement.
func NewNoop() LeaderboardMetrics { return noop{} }

func (noop) RecordUpstreamRequest(context.Context, string, string)    {}
func (noop) RecordUsernameLookup(context.Context, string)             {}
func (noop) RecordSnapshot(context.Context, string)                   {}
func (noop) RecordAggregationDuration(context.Context, time.Duration) {}
func (noop) RecordCacheResult(context.Context, bool)                  {}
