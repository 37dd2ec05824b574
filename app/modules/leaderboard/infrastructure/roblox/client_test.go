package roblox

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPClient(Config{
		APIKey:         "test-key",
		UniverseID:     "12345",
		BaseURL:        srv.URL,
		UsersBaseURL:   srv.URL,
		RequestTimeout: time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHTTPClient_ListEntries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cloud/v2/universes/12345/ordered-data-stores/PlayTime_A/scopes/global/entries", r.URL.Path)
		assert.Equal(t, "value desc", r.URL.Query().Get("orderBy"))
		assert.Equal(t, "100", r.URL.Query().Get("maxPageSize"))
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"orderedDataStoreEntries":[
			{"path":"universes/12345/ordered-data-stores/PlayTime_A/scopes/global/entries/111","value":7200},
			{"path":"x","id":"222","value":61}
		]}`))
	})

	entries, err := client.ListEntries(context.Background(), "PlayTime_A", "value desc", 100)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "111", entries[0].PlayerID())
	assert.Equal(t, "222", entries[1].PlayerID())
	assert.Equal(t, 7200.0, *entries[0].Value)
}

func TestHTTPClient_ListEntries_Empty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	entries, err := client.ListEntries(context.Background(), "Completions_A", "value desc", 100)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHTTPClient_ListEntries_StatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	})
	_, err := client.ListEntries(context.Background(), "Completions_A", "value desc", 100)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Equal(t, "HTTP 403", statusErr.Error())
}

func TestHTTPClient_Timeout(t *testing.T) {
	block := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	})
	defer close(block)
	client.cfg.RequestTimeout = 50 * time.Millisecond

	start := time.Now()
	_, err := client.ListEntries(context.Background(), "PlayTime_A", "value desc", 100)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestHTTPClient_GetUsername(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
		wantErr bool
	}{
		{
			name: "found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/users/987654321", r.URL.Path)
				assert.Empty(t, r.Header.Get("x-api-key"))
				_, _ = w.Write([]byte(`{"id":987654321,"name":"PizzaFan"}`))
			},
			want: "PizzaFan",
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantErr: true,
		},
		{
			name: "no name",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"id":1}`))
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			got, err := client.GetUsername(context.Background(), "987654321")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPClient_ListOrderedDataStores(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cloud/v2/universes/12345/ordered-data-stores", r.URL.Path)
		_, _ = w.Write([]byte(`{"orderedDataStores":[{"name":"PlayTime_A"},{"id":"Completions_A"}]}`))
	})
	names, err := client.ListOrderedDataStores(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"PlayTime_A", "Completions_A"}, names)
}

func TestHTTPClient_ProbeEntries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("maxPageSize"))
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid API Key"}`))
	})
	raw, err := client.ProbeEntries(context.Background(), "RebirthLeaderboard_A", "value desc", 5)
	require.NoError(t, err)
	assert.False(t, raw.OK())
	assert.Equal(t, http.StatusUnauthorized, raw.StatusCode)
	assert.Contains(t, raw.Body, "Invalid API Key")
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "", MaskKey(""))
	assert.Equal(t, "*****", MaskKey("short"))
	assert.Equal(t, "abcd****wxyz", MaskKey("abcd1234wxyz"))
}
