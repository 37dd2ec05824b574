package leaderboardhandlers

import (
	"context"

	leaderboardservice "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/domain"
)

// FakeService is a programmable leaderboardservice.Service.
type FakeService struct {
	GetLeaderboardsFunc   func(ctx context.Context) leaderboarddomain.Snapshot
	RefreshFunc           func(ctx context.Context) leaderboarddomain.Snapshot
	ClearCacheFunc        func(ctx context.Context) error
	ConnectionInfoFunc    func() leaderboardservice.ConnectionInfo
	DebugDataStoreFunc    func(ctx context.Context, store string) (*leaderboardservice.DebugResult, error)
	ListOrderedStoresFunc func(ctx context.Context) (*leaderboardservice.StoreList, error)
	ProbeAllStoresFunc    func(ctx context.Context) (*leaderboardservice.ProbeReport, error)
	RenderChartFunc       func(ctx context.Context, category string) ([]byte, error)
	ExportWorkbookFunc    func(ctx context.Context) ([]byte, error)
}

var _ leaderboardservice.Service = (*FakeService)(nil)

func (f *FakeService) GetLeaderboards(ctx context.Context) leaderboarddomain.Snapshot {
	if f.GetLeaderboardsFunc != nil {
		return f.GetLeaderboardsFunc(ctx)
	}
	return leaderboarddomain.Snapshot{}
}

func (f *FakeService) Refresh(ctx context.Context) leaderboarddomain.Snapshot {
	if f.RefreshFunc != nil {
		return f.RefreshFunc(ctx)
	}
	return leaderboarddomain.Snapshot{}
}

func (f *FakeService) ClearCache(ctx context.Context) error {
	if f.ClearCacheFunc != nil {
		return f.ClearCacheFunc(ctx)
	}
	return nil
}

func (f *FakeService) ConnectionInfo() leaderboardservice.ConnectionInfo {
	if f.ConnectionInfoFunc != nil {
		return f.ConnectionInfoFunc()
	}
	return leaderboardservice.ConnectionInfo{}
}

func (f *FakeService) DebugDataStore(ctx context.Context, store string) (*leaderboardservice.DebugResult, error) {
	if f.DebugDataStoreFunc != nil {
		return f.DebugDataStoreFunc(ctx, store)
	}
	return &leaderboardservice.DebugResult{}, nil
}

func (f *FakeService) ListOrderedStores(ctx context.Context) (*leaderboardservice.StoreList, error) {
	if f.ListOrderedStoresFunc != nil {
		return f.ListOrderedStoresFunc(ctx)
	}
	return &leaderboardservice.StoreList{}, nil
}

func (f *FakeService) ProbeAllStores(ctx context.Context) (*leaderboardservice.ProbeReport, error) {
	if f.ProbeAllStoresFunc != nil {
		return f.ProbeAllStoresFunc(ctx)
	}
	return &leaderboardservice.ProbeReport{}, nil
}

func (f *FakeService) RenderChart(ctx context.Context, category string) ([]byte, error) {
	if f.RenderChartFunc != nil {
		return f.RenderChartFunc(ctx, category)
	}
	return nil, nil
}

func (f *FakeService) ExportWorkbook(ctx context.Context) ([]byte, error) {
	if f.ExportWorkbookFunc != nil {
		return f.ExportWorkbookFunc(ctx)
	}
	return nil, nil
}
