package leaderboardresolver

import (
	"context"

	leaderboarddomain "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/domain"
)

// FakeSource is a programmable Source that counts calls.
type FakeSource struct {
	FetchSnapshotFunc func(ctx context.Context) (leaderboarddomain.Snapshot, error)
	PingFunc          func(ctx context.Context) error

	fetches int
	pings   int
}

func (f *FakeSource) FetchSnapshot(ctx context.Context) (leaderboarddomain.Snapshot, error) {
	f.fetches++
	if f.FetchSnapshotFunc != nil {
		return f.FetchSnapshotFunc(ctx)
	}
	return leaderboarddomain.Snapshot{}, nil
}

func (f *FakeSource) Ping(ctx context.Context) error {
	f.pings++
	if f.PingFunc != nil {
		return f.PingFunc(ctx)
	}
	return nil
}
