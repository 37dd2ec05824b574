package leaderboardservice

import "errors"

var (
	// ErrMissingCredentials is returned by diagnostics that need to reach the upstream.
	ErrMissingCredentials = errors.New("missing API credentials")
	// ErrUnknownCategory is returned for category keys that match no leaderboard.
	ErrUnknownCategory = errors.New("unknown leaderboard category")
)
