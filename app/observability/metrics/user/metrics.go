// Package usermetrics records user service operation metrics.
package usermetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// UserMetrics mirrors the attempt/success/failure/duration shape used by every service.
type UserMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, d time.Duration)
}

type prometheusMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewPrometheus registers the user collectors on reg.
func NewPrometheus(reg prometheus.Registerer) UserMetrics {
	m := &prometheusMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pizzawalk",
			Subsystem: "user",
			Name:      "operations_total",
			Help:      "User service operations by name and outcome.",
		}, []string{"operation", "service", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pizzawalk",
			Subsystem: "user",
			Name:      "operation_duration_seconds",
			Help:      "User service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "service"}),
	}
	reg.MustRegister(m.operations, m.duration)
	return m
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(operation, service, "attempt").Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(operation, service, "success").Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(operation, service, "failure").Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, d time.Duration) {
	m.duration.WithLabelValues(operation, service).Observe(d.Seconds())
}

type noop struct{}

// NewNoop returns metrics that discard every measurement.
func NewNoop() UserMetrics { return noop{} }

func (noop) RecordOperationAttempt(context.Context, string, string)                 {}
func (noop) RecordOperationSuccess(context.Context, string, string)                 {}
func (noop) RecordOperationFailure(context.Context, string, string)                 {}
func (noop) RecordOperationDuration(context.Context, string, string, time.Duration) {}
