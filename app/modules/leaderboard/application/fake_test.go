package leaderboardservice

import (
	"context"
	"sync"

	"github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/infrastructure/roblox"
)

// FakeClient is a programmable roblox.Client.
type FakeClient struct {
	ListEntriesFunc           func(ctx context.Context, store, orderBy string, pageSize int) ([]roblox.DataStoreEntry, error)
	GetUsernameFunc           func(ctx context.Context, userID string) (string, error)
	ListOrderedDataStoresFunc func(ctx context.Context) ([]string, error)
	ProbeEntriesFunc          func(ctx context.Context, store, orderBy string, pageSize int) (*roblox.RawResponse, error)

	mu    sync.Mutex
	trace []string
}

func (f *FakeClient) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

// Trace returns the calls made so far.
func (f *FakeClient) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeClient) ListEntries(ctx context.Context, store, orderBy string, pageSize int) ([]roblox.DataStoreEntry, error) {
	f.record("ListEntries:" + store)
	if f.ListEntriesFunc != nil {
		return f.ListEntriesFunc(ctx, store, orderBy, pageSize)
	}
	return nil, nil
}

func (f *FakeClient) GetUsername(ctx context.Context, userID string) (string, error) {
	f.record("GetUsername:" + userID)
	if f.GetUsernameFunc != nil {
		return f.GetUsernameFunc(ctx, userID)
	}
	return "user_" + userID, nil
}

func (f *FakeClient) ListOrderedDataStores(ctx context.Context) ([]string, error) {
	f.record("ListOrderedDataStores")
	if f.ListOrderedDataStoresFunc != nil {
		return f.ListOrderedDataStoresFunc(ctx)
	}
	return nil, nil
}

func (f *FakeClient) ProbeEntries(ctx context.Context, store, orderBy string, pageSize int) (*roblox.RawResponse, error) {
	f.record("ProbeEntries:" + store)
	if f.ProbeEntriesFunc != nil {
		return f.ProbeEntriesFunc(ctx, store, orderBy, pageSize)
	}
	return &roblox.RawResponse{StatusCode: 200, Body: `{}`}, nil
}

// FakePublisher records published topics.
type FakePublisher struct {
	mu       sync.Mutex
	Topics   []string
	Payloads []any
	Err      error
}

func (f *FakePublisher) Publish(_ context.Context, topic string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Topics = append(f.Topics, topic)
	f.Payloads = append(f.Payloads, payload)
	return f.Err
}
