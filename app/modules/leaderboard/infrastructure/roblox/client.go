// Package roblox talks to the Roblox Open Cloud ordered data store and users APIs.
package roblox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Black-And-White-Club/pizza-walk/app/observability/attr"
	"golang.org/x/time/rate"
)

const (
	apiKeyHeader = "x-api-key"
	maxBodyBytes = 1 << 20
)

// ErrNoUsername is returned when the users API answers without a display name.
var ErrNoUsername = errors.New("roblox: user has no name")

// StatusError is returned for any non-2xx upstream response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// Client is the subset of Open Cloud the leaderboard needs.
type Client interface {
	ListEntries(ctx context.Context, store, orderBy string, pageSize int) ([]DataStoreEntry, error)
	GetUsername(ctx context.Context, userID string) (string, error)
	ListOrderedDataStores(ctx context.Context) ([]string, error)
	ProbeEntries(ctx context.Context, store, orderBy string, pageSize int) (*RawResponse, error)
}

// DataStoreEntry is one row of an ordered data store listing.
type DataStoreEntry struct {
	Path  string   `json:"path"`
	ID    string   `json:"id"`
	Value *float64 `json:"value"`
}

// PlayerID is the entry id, falling back to the last segment of its resource path.
func (e DataStoreEntry) PlayerID() string {
	if e.ID != "" {
		return e.ID
	}
	if i := strings.LastIndex(e.Path, "/"); i >= 0 {
		return e.Path[i+1:]
	}
	return e.Path
}

type entriesResponse struct {
	Entries []DataStoreEntry `json:"orderedDataStoreEntries"`
}

type storesResponse struct {
	Stores []struct {
		Path string `json:"path"`
		Name string `json:"name"`
		ID   string `json:"id"`
	} `json:"orderedDataStores"`
}

type userResponse struct {
	Name string `json:"name"`
}

// RawResponse is an unparsed upstream answer, kept for diagnostics.
type RawResponse struct {
	URL        string
	StatusCode int
	Body       string
}

// OK reports whether the probe got a 2xx.
func (r *RawResponse) OK() bool { return r.StatusCode >= 200 && r.StatusCode < 300 }

// Config configures HTTPClient.
type Config struct {
	APIKey         string
	UniverseID     string
	BaseURL        string
	UsersBaseURL   string
	RequestTimeout time.Duration
	LookupRPS      float64
}

// HTTPClient implements Client over net/http. Every call gets its own deadline.
type HTTPClient struct {
	http    *http.Client
	cfg     Config
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewHTTPClient builds a client. A zero LookupRPS leaves username lookups unpaced.
func NewHTTPClient(cfg Config, logger *slog.Logger) *HTTPClient {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.UsersBaseURL = strings.TrimRight(cfg.UsersBaseURL, "/")

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.LookupRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.LookupRPS), max(1, int(cfg.LookupRPS)))
	}
	return &HTTPClient{
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		cfg:     cfg,
		limiter: limiter,
		logger:  logger,
	}
}

func (c *HTTPClient) entriesURL(store, orderBy string, pageSize int) string {
	q := url.Values{}
	q.Set("orderBy", orderBy)
	q.Set("maxPageSize", strconv.Itoa(pageSize))
	return fmt.Sprintf("%s/cloud/v2/universes/%s/ordered-data-stores/%s/scopes/global/entries?%s",
		c.cfg.BaseURL, url.PathEscape(c.cfg.UniverseID), url.PathEscape(store), q.Encode())
}

// ListEntries fetches one page of a store. A 2xx with no entries is not an error.
func (c *HTTPClient) ListEntries(ctx context.Context, store, orderBy string, pageSize int) ([]DataStoreEntry, error) {
	var out entriesResponse
	if err := c.getJSON(ctx, c.entriesURL(store, orderBy, pageSize), true, &out); err != nil {
		return nil, fmt.Errorf("list entries for %s: %w", store, err)
	}
	return out.Entries, nil
}

// GetUsername resolves a user id to its display name.
func (c *HTTPClient) GetUsername(ctx context.Context, userID string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	var out userResponse
	endpoint := fmt.Sprintf("%s/v1/users/%s", c.cfg.UsersBaseURL, url.PathEscape(userID))
	if err := c.getJSON(ctx, endpoint, false, &out); err != nil {
		return "", fmt.Errorf("get user %s: %w", userID, err)
	}
	if out.Name == "" {
		return "", ErrNoUsername
	}
	return out.Name, nil
}

// ListOrderedDataStores lists the names of every ordered store in the universe.
func (c *HTTPClient) ListOrderedDataStores(ctx context.Context) ([]string, error) {
	var out storesResponse
	endpoint := fmt.Sprintf("%s/cloud/v2/universes/%s/ordered-data-stores", c.cfg.BaseURL, url.PathEscape(c.cfg.UniverseID))
	if err := c.getJSON(ctx, endpoint, true, &out); err != nil {
		return nil, fmt.Errorf("list ordered data stores: %w", err)
	}
	names := make([]string, 0, len(out.Stores))
	for _, s := range out.Stores {
		name := s.Name
		if name == "" {
			name = s.ID
		}
		names = append(names, name)
	}
	return names, nil
}

// ProbeEntries performs the entries request and returns the raw answer whatever its status.
func (c *HTTPClient) ProbeEntries(ctx context.Context, store, orderBy string, pageSize int) (*RawResponse, error) {
	endpoint := c.entriesURL(store, orderBy, pageSize)
	resp, body, err := c.do(ctx, endpoint, true)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", store, err)
	}
	return &RawResponse{URL: endpoint, StatusCode: resp.StatusCode, Body: string(body)}, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, endpoint string, authed bool, v any) error {
	resp, body, err := c.do(ctx, endpoint, authed)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "Upstream returned non-2xx status",
			attr.String("url", redactURL(endpoint)),
			attr.Int("status", resp.StatusCode),
		)
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) do(ctx context.Context, endpoint string, authed bool) (*http.Response, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if authed {
		req.Header.Set(apiKeyHeader, c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}
	return resp, body, nil
}

func redactURL(endpoint string) string {
	if i := strings.Index(endpoint, "?"); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}

// MaskKey shows just enough of an API key to tell keys apart in diagnostics.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
