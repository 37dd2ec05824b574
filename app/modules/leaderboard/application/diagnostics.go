package leaderboardservice

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/domain"
	"github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/infrastructure/roblox"
	"github.com/Black-And-White-Club/pizza-walk/app/observability/attr"
)

const (
	debugPageSize     = 5
	probePageSize     = 10
	probeBodyPreview  = 500
	defaultDebugStore = "RebirthLeaderboard_A"
)

// ConnectionInfo summarises the upstream configuration without exposing the key.
type ConnectionInfo struct {
	UniverseID       string `json:"universeId"`
	APIKeyConfigured bool   `json:"apiKeyConfigured"`
	APIKeyLength     int    `json:"apiKeyLength"`
	CacheBackend     string `json:"cacheBackend"`
}

// DebugResult is the raw answer for a single store.
type DebugResult struct {
	Store    string `json:"store"`
	URL      string `json:"url"`
	Status   int    `json:"status"`
	OK       bool   `json:"ok"`
	Response any    `json:"response"`
}

// StoreList is every ordered store visible to the configured key.
type StoreList struct {
	Success           bool     `json:"success"`
	OrderedDataStores []string `json:"orderedDataStores"`
	Count             int      `json:"count"`
	AllStoreNames     string   `json:"allStoreNames"`
}

// ProbeResult is one store's outcome in a ProbeReport.
type ProbeResult struct {
	Category string `json:"category"`
	Store    string `json:"store"`
	Status   int    `json:"status,omitempty"`
	OK       bool   `json:"ok"`
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ProbeReport is the outcome of querying every store one after another.
type ProbeReport struct {
	APIKeyPreview string        `json:"apiKeyPreview"`
	UniverseID    string        `json:"universeId"`
	Results       []ProbeResult `json:"results"`
	Timestamp     string        `json:"timestamp"`
}

func (s *LeaderboardService) ConnectionInfo() ConnectionInfo {
	info := ConnectionInfo{
		UniverseID:       s.cfg.UniverseID,
		APIKeyConfigured: s.cfg.HasCredentials,
		APIKeyLength:     len(s.cfg.APIKey),
		CacheBackend:     "none",
	}
	if s.cache != nil {
		info.CacheBackend = s.cache.Backend()
	}
	return info
}

// DebugDataStore fetches the first few entries of store, defaulting to the rebirth store.
func (s *LeaderboardService) DebugDataStore(ctx context.Context, store string) (*DebugResult, error) {
	ctx, span := s.startSpan(ctx, "DebugDataStore")
	defer span.End()

	if !s.cfg.HasCredentials {
		return nil, ErrMissingCredentials
	}
	if store == "" {
		store = defaultDebugStore
	}
	raw, err := s.client.ProbeEntries(ctx, store, leaderboarddomain.Descending.OrderBy(), debugPageSize)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &DebugResult{
		Store:    store,
		URL:      raw.URL,
		Status:   raw.StatusCode,
		OK:       raw.OK(),
		Response: decodeBody(raw.Body),
	}, nil
}

func (s *LeaderboardService) ListOrderedStores(ctx context.Context) (*StoreList, error) {
	ctx, span := s.startSpan(ctx, "ListOrderedStores")
	defer span.End()

	if !s.cfg.HasCredentials {
		return nil, ErrMissingCredentials
	}
	names, err := s.client.ListOrderedDataStores(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &StoreList{
		Success:           true,
		OrderedDataStores: names,
		Count:             len(names),
		AllStoreNames:     strings.Join(names, ", "),
	}, nil
}

// ProbeAllStores queries each category's store sequentially, pausing between requests.
func (s *LeaderboardService) ProbeAllStores(ctx context.Context) (*ProbeReport, error) {
	ctx, span := s.startSpan(ctx, "ProbeAllStores")
	defer span.End()

	if !s.cfg.HasCredentials {
		return nil, ErrMissingCredentials
	}

	report := &ProbeReport{
		APIKeyPreview: roblox.MaskKey(s.cfg.APIKey),
		UniverseID:    s.cfg.UniverseID,
		Results:       make([]ProbeResult, 0, len(leaderboarddomain.Categories)),
	}
	for i, category := range leaderboarddomain.Categories {
		if i > 0 && s.cfg.ProbeDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.cfg.ProbeDelay):
			}
		}

		result := ProbeResult{Category: string(category.Key), Store: category.Store}
		raw, err := s.client.ProbeEntries(ctx, category.Store, category.Order.OrderBy(), probePageSize)
		if err != nil {
			result.Error = err.Error()
		} else {
			result.Status = raw.StatusCode
			result.OK = raw.OK()
			result.Response = truncate(raw.Body, probeBodyPreview)
		}
		s.logger.InfoContext(ctx, "Probed ordered data store",
			attr.String("store", category.Store),
			attr.Int("status", result.Status),
			attr.Bool("ok", result.OK),
		)
		report.Results = append(report.Results, result)
	}
	report.Timestamp = leaderboarddomain.FormatTimestamp(s.now())
	return report, nil
}

// decodeBody keeps JSON bodies structured and passes anything else through as text.
func decodeBody(body string) any {
	var v any
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		return body
	}
	return v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
