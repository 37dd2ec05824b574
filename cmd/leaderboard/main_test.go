package main

import (
	"bytes"
	"testing"
	"time"

	leaderboardresolver "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	snap := leaderboardresolver.SampleSnapshot(time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC))

	tests := []struct {
		name    string
		state   leaderboardresolver.State
		want    []string
		wantErr bool
	}{
		{
			name:  "fresh from server",
			state: leaderboardresolver.State{Status: leaderboardresolver.StatusReady, Snapshot: &snap},
			want:  []string{"Top Rebirths", "Fastest Times", "ProWalkerX", "(server)"},
		},
		{
			name: "stale cache keeps the fetch error",
			state: leaderboardresolver.State{
				Status:    leaderboardresolver.StatusReady,
				Snapshot:  &snap,
				FromCache: true,
				Stale:     true,
				Error:     "connection refused",
			},
			want: []string{"(stale cache)", "Warning: connection refused"},
		},
		{
			name:    "no data",
			state:   leaderboardresolver.State{Status: leaderboardresolver.StatusError, Error: "boom"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := render(&buf, tt.state)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "boom")
				return
			}
			require.NoError(t, err)
			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}
