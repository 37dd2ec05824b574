package leaderboardresolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/domain"
)

// ErrUnrecognizedPayload is returned when the server answers with JSON that is not a snapshot.
var ErrUnrecognizedPayload = errors.New("unrecognized leaderboard payload")

// Source is the server the resolver reads from.
type Source interface {
	FetchSnapshot(ctx context.Context) (leaderboarddomain.Snapshot, error)
	Ping(ctx context.Context) error
}

// HTTPSource talks to the leaderboard API over HTTP.
type HTTPSource struct {
	baseURL string
	http    *http.Client
}

func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) FetchSnapshot(ctx context.Context) (leaderboarddomain.Snapshot, error) {
	body, err := s.get(ctx, "/api/leaderboards")
	if err != nil {
		return leaderboarddomain.Snapshot{}, err
	}

	var snap leaderboarddomain.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return leaderboarddomain.Snapshot{}, fmt.Errorf("decode leaderboards: %w", err)
	}
	if !recognized(snap) {
		return leaderboarddomain.Snapshot{}, ErrUnrecognizedPayload
	}
	return snap, nil
}

// recognized reports whether the payload carried metadata or any category list.
func recognized(snap leaderboarddomain.Snapshot) bool {
	if snap.Metadata.Source != "" {
		return true
	}
	for _, entries := range snap.Categories {
		if entries != nil {
			return true
		}
	}
	return false
}

// Ping calls the server's test endpoint.
func (s *HTTPSource) Ping(ctx context.Context) error {
	body, err := s.get(ctx, "/api/test")
	if err != nil {
		return err
	}
	var v map[string]any
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("decode test response: %w", err)
	}
	return nil
}

func (s *HTTPSource) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("server responded with status: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
