// Package events defines the topics and payloads the service publishes.
package events

import "time"

const (
	LeaderboardSnapshotRefreshedV1 = "leaderboard.snapshot.refreshed.v1"

	UserCreatedV1      = "user.created.v1"
	UserAdminUpdatedV1 = "user.admin_updated.v1"
	UserDeletedV1      = "user.deleted.v1"
)

// LeaderboardSnapshotRefreshedPayload is published after every fresh aggregation.
type LeaderboardSnapshotRefreshedPayload struct {
	Source               string            `json:"source"`
	Connected            bool              `json:"connected"`
	SuccessfulCategories int               `json:"successful_categories"`
	TotalCategories      int               `json:"total_categories"`
	ResponseTimeMs       int64             `json:"response_time_ms"`
	CategoryErrors       map[string]string `json:"category_errors,omitempty"`
	RefreshedAt          time.Time         `json:"refreshed_at"`
}

// UserCreatedPayload announces a new account.
type UserCreatedPayload struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// UserAdminUpdatedPayload announces an admin flag change.
type UserAdminUpdatedPayload struct {
	UserID string `json:"user_id"`
	Admin  bool   `json:"admin"`
}

// UserDeletedPayload announces an account removal.
type UserDeletedPayload struct {
	UserID string `json:"user_id"`
}
