//go:build integration

package leaderboardintegrationtests

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/domain"
	leaderboardqueue "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/infrastructure/queue"
	"github.com/Black-And-White-Club/pizza-walk/integration_tests/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEnv *testutils.TestEnvironment

func TestMain(m *testing.M) {
	env, err := testutils.NewTestEnvironment()
	if err != nil {
		log.Fatalf("Exiting due to failed test environment initialization: %v", err)
	}
	testEnv = env

	code := m.Run()
	testEnv.Cleanup()
	os.Exit(code)
}

type countingRefresher struct {
	calls atomic.Int32
}

func (r *countingRefresher) Refresh(context.Context) leaderboarddomain.Snapshot {
	r.calls.Add(1)
	return leaderboarddomain.FallbackSnapshot(leaderboarddomain.SourceNoCreds, leaderboarddomain.MissingCredentialsMessage, time.Now())
}

func TestQueueService_WarmsOnStart(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	refresher := &countingRefresher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := leaderboardqueue.NewService(ctx, testEnv.Config.Postgres.DSN, refresher, time.Minute, logger)
	require.NoError(t, err)
	require.NoError(t, svc.HealthCheck(ctx))

	require.NoError(t, svc.Start(ctx))
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()
		assert.NoError(t, svc.Stop(stopCtx))
	}()

	assert.Eventually(t, func() bool {
		return refresher.calls.Load() >= 1
	}, 20*time.Second, 100*time.Millisecond)
}
