// Package observability wires logging, tracing and metrics for the service.
package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	leaderboardmetrics "github.com/Black-And-White-Club/pizza-walk/app/observability/metrics/leaderboard"
	usermetrics "github.com/Black-And-White-Club/pizza-walk/app/observability/metrics/user"
	"github.com/Black-And-White-Club/pizza-walk/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const serviceName = "pizza-walk"

// Observability bundles everything a module needs to log, trace and measure.
type Observability struct {
	Provider Provider
	Registry Registry
}

// Provider owns the process wide logger.
type Provider struct {
	Logger *slog.Logger
}

// Registry exposes the tracer, the prometheus registry and the per-module metrics.
type Registry struct {
	Tracer             trace.Tracer
	Prometheus         *prometheus.Registry
	LeaderboardMetrics leaderboardmetrics.LeaderboardMetrics
	UserMetrics        usermetrics.UserMetrics
}

// Init builds the observability stack from configuration, logging JSON to stdout.
func Init(cfg config.ObservabilityConfig) Observability {
	return InitWithWriter(cfg, os.Stdout)
}

// InitWithWriter is Init with an explicit log destination.
func InitWithWriter(cfg config.ObservabilityConfig, w io.Writer) Observability {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(cfg.LogLevel),
	})).With(
		slog.String("service", serviceName),
		slog.String("environment", cfg.Environment),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return Observability{
		Provider: Provider{Logger: logger},
		Registry: Registry{
			Tracer:             otel.Tracer(serviceName),
			Prometheus:         reg,
			LeaderboardMetrics: leaderboardmetrics.NewPrometheus(reg),
			UserMetrics:        usermetrics.NewPrometheus(reg),
		},
	}
}

// NewNoop returns a silent stack for tests and tooling.
func NewNoop() Observability {
	return Observability{
		Provider: Provider{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))},
		Registry: Registry{
			Tracer:             noop.NewTracerProvider().Tracer("test"),
			Prometheus:         prometheus.NewRegistry(),
			LeaderboardMetrics: leaderboardmetrics.NewNoop(),
			UserMetrics:        usermetrics.NewNoop(),
		},
	}
}

// ParseLevel maps a config string onto a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
