package leaderboardservice

import (
	"context"

	leaderboarddomain "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/domain"
)

// Service is the leaderboard application surface used by handlers, jobs and tools.
type Service interface {
	// GetLeaderboards never fails: it degrades to cached or static data instead.
	GetLeaderboards(ctx context.Context) leaderboarddomain.Snapshot
	Refresh(ctx context.Context) leaderboarddomain.Snapshot
	ClearCache(ctx context.Context) error

	ConnectionInfo() ConnectionInfo
	DebugDataStore(ctx context.Context, store string) (*DebugResult, error)
	ListOrderedStores(ctx context.Context) (*StoreList, error)
	ProbeAllStores(ctx context.Context) (*ProbeReport, error)

	RenderChart(ctx context.Context, category string) ([]byte, error)
	ExportWorkbook(ctx context.Context) ([]byte, error)
}
