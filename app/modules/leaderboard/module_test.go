package leaderboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	leaderboardcache "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/infrastructure/cache"
	"github.com/Black-And-White-Club/pizza-walk/app/observability"
	"github.com/Black-And-White-Club/pizza-walk/config"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLeaderboardModule_WithoutCredentials(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	router := chi.NewRouter()

	m, err := NewLeaderboardModule(ctx, cfg, observability.NewNoop(), nil, router, leaderboardcache.NewMemoryCache(time.Now))
	require.NoError(t, err)
	assert.Nil(t, m.queue)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/leaderboards", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Metadata struct {
			Source    string `json:"source"`
			Connected bool   `json:"connected"`
			Error     string `json:"error"`
		} `json:"_metadata"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "fallback_no_creds", body.Metadata.Source)
	assert.False(t, body.Metadata.Connected)
	assert.Equal(t, "Missing API credentials", body.Metadata.Error)
}

func TestModule_RunAndClose(t *testing.T) {
	m, err := NewLeaderboardModule(context.Background(), config.Default(), observability.NewNoop(), nil, nil, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	ctx, cancel := context.WithCancel(context.Background())
	go m.Run(ctx, &wg)

	cancel()
	wg.Wait()
	assert.NoError(t, m.Close())
}
