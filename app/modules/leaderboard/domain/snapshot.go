package leaderboarddomain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Source records which acquisition tier produced a snapshot.
type Source string

const (
	SourceLive     Source = "ordered_data_stores"
	SourceFallback Source = "fallback"
	SourceNoCreds  Source = "fallback_no_creds"
	SourceError    Source = "fallback_error"
)

// IsLive reports whether the snapshot carries upstream data.
func (s Source) IsLive() bool { return s == SourceLive }

// MissingCredentialsMessage is the metadata error reported when the upstream cannot be queried.
const MissingCredentialsMessage = "Missing API credentials"

// Entry is one ranked row. RawValue and PlayerID are only set on live entries.
type Entry struct {
	Rank     int      `json:"rank"`
	Username string   `json:"username"`
	Value    Value    `json:"value"`
	RawValue *float64 `json:"rawValue,omitempty"`
	PlayerID string   `json:"playerId,omitempty"`
}

// Metadata describes how a snapshot was produced.
type Metadata struct {
	Source               Source                 `json:"source"`
	Connected            bool                   `json:"connected"`
	SuccessfulCategories int                    `json:"successfulCategories"`
	TotalCategories      int                    `json:"totalCategories"`
	ResponseTime         string                 `json:"responseTime"`
	ResponseTimeMs       int64                  `json:"responseTimeMs"`
	Timestamp            string                 `json:"timestamp"`
	Note                 string                 `json:"note,omitempty"`
	Error                string                 `json:"error,omitempty"`
	CategoryErrors       map[CategoryKey]string `json:"categoryErrors,omitempty"`
	Cached               bool                   `json:"cached,omitempty"`
}

// SetResponseTime fills both the display and the numeric response time.
func (m *Metadata) SetResponseTime(d time.Duration) {
	m.ResponseTimeMs = d.Milliseconds()
	m.ResponseTime = fmt.Sprintf("%dms", m.ResponseTimeMs)
}

// Snapshot is the complete leaderboard payload served to clients.
type Snapshot struct {
	Categories map[CategoryKey][]Entry
	Metadata   Metadata
}

// Entries returns the rows for key, never nil.
func (s Snapshot) Entries(key CategoryKey) []Entry {
	if e := s.Categories[key]; e != nil {
		return e
	}
	return []Entry{}
}

// Clone deep copies the snapshot so cached copies cannot be mutated by callers.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{Categories: make(map[CategoryKey][]Entry, len(s.Categories)), Metadata: s.Metadata}
	for k, entries := range s.Categories {
		cp := make([]Entry, len(entries))
		for i, e := range entries {
			if e.RawValue != nil {
				raw := *e.RawValue
				e.RawValue = &raw
			}
			cp[i] = e
		}
		out.Categories[k] = cp
	}
	if s.Metadata.CategoryErrors != nil {
		out.Metadata.CategoryErrors = make(map[CategoryKey]string, len(s.Metadata.CategoryErrors))
		for k, v := range s.Metadata.CategoryErrors {
			out.Metadata.CategoryErrors[k] = v
		}
	}
	return out
}

type snapshotJSON struct {
	TopRebirths    []Entry  `json:"topRebirths"`
	TopPlaytime    []Entry  `json:"topPlaytime"`
	TopCompletions []Entry  `json:"topCompletions"`
	Fastest        []Entry  `json:"fastest"`
	Metadata       Metadata `json:"_metadata"`
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotJSON{
		TopRebirths:    s.Entries(TopRebirths),
		TopPlaytime:    s.Entries(TopPlaytime),
		TopCompletions: s.Entries(TopCompletions),
		Fastest:        s.Entries(Fastest),
		Metadata:       s.Metadata,
	})
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw snapshotJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Categories = map[CategoryKey][]Entry{
		TopRebirths:    raw.TopRebirths,
		TopPlaytime:    raw.TopPlaytime,
		TopCompletions: raw.TopCompletions,
		Fastest:        raw.Fastest,
	}
	s.Metadata = raw.Metadata
	return nil
}
