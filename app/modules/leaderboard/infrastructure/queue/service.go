package leaderboardqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/pizza-walk/app/observability/attr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
)

const queueName = "leaderboard"

// Service schedules periodic cache warm-ups using River.
type Service struct {
	client *river.Client[pgx.Tx]
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewService connects to Postgres, applies River's schema and registers the
// warm-up job to run every interval.
func NewService(ctx context.Context, dsn string, refresher Refresher, interval time.Duration, logger *slog.Logger) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("component", "river_queue"),
		attr.Duration("warm_interval", interval),
	)
	if interval <= 0 {
		return nil, fmt.Errorf("warm interval must be positive, got %s", interval)
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate River schema: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewWarmCacheWorker(refresher, ctxLogger, interval))

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 1},
			queueName:          {MaxWorkers: 1},
		},
		Workers:      workers,
		PeriodicJobs: []*river.PeriodicJob{WarmCachePeriodicJob(interval)},
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	ctxLogger.Info("Leaderboard queue service initialized")
	return &Service{client: client, pool: pool, logger: ctxLogger}, nil
}

// WarmCachePeriodicJob enqueues a warm-up every interval and once at start.
func WarmCachePeriodicJob(interval time.Duration) *river.PeriodicJob {
	return river.NewPeriodicJob(
		river.PeriodicInterval(interval),
		func() (river.JobArgs, *river.InsertOpts) {
			return WarmCacheJob{}, &river.InsertOpts{
				Queue:       queueName,
				MaxAttempts: 1,
				UniqueOpts:  river.UniqueOpts{ByPeriod: interval},
			}
		},
		&river.PeriodicJobOpts{RunOnStart: true},
	)
}

func (s *Service) Start(ctx context.Context) error {
	s.logger.Info("Starting leaderboard queue service")
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	return nil
}

// Stop waits for the running warm-up to finish and releases the pool.
func (s *Service) Stop(ctx context.Context) error {
	s.logger.Info("Stopping leaderboard queue service")
	defer s.pool.Close()
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	return nil
}

func (s *Service) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
