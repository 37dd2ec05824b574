package leaderboardservice

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/domain"
	"github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/infrastructure/roblox"
	"github.com/Black-And-White-Club/pizza-walk/app/observability/attr"
	"golang.org/x/sync/errgroup"
)

// categoryResult is what one category query hands back to the aggregator.
type categoryResult struct {
	entries []leaderboarddomain.Entry
	err     error
}

// aggregate runs the four category queries and merges them over the static table.
// Anything unexpected degrades the whole snapshot to fallback_error.
func (s *LeaderboardService) aggregate(ctx context.Context) (snap leaderboarddomain.Snapshot) {
	start := s.now()

	if !s.cfg.HasCredentials {
		s.logger.WarnContext(ctx, "Roblox credentials missing, serving fallback leaderboards")
		return leaderboarddomain.FallbackSnapshot(leaderboarddomain.SourceNoCreds, leaderboarddomain.MissingCredentialsMessage, start)
	}

	defer func() {
		if r := recover(); r != nil {
			snap = s.errorSnapshot(ctx, fmt.Errorf("panic during aggregation: %v", r), start)
		}
	}()

	results := make([]categoryResult, len(leaderboarddomain.Categories))
	var g errgroup.Group
	for i, category := range leaderboarddomain.Categories {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("panic fetching %s: %v", category.Key, r)
				}
			}()
			results[i] = s.fetchCategory(ctx, category)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return s.errorSnapshot(ctx, err, start)
	}
	if err := ctx.Err(); err != nil {
		return s.errorSnapshot(ctx, err, start)
	}

	categories := leaderboarddomain.FallbackCategories()
	categoryErrors := map[leaderboarddomain.CategoryKey]string{}
	successful := 0
	for i, category := range leaderboarddomain.Categories {
		r := results[i]
		if r.err != nil {
			categoryErrors[category.Key] = errorText(r.err)
		}
		if len(r.entries) > 0 {
			categories[category.Key] = r.entries
			successful++
		}
	}

	meta := leaderboarddomain.Metadata{
		Source:               leaderboarddomain.SourceFallback,
		SuccessfulCategories: successful,
		TotalCategories:      leaderboarddomain.TotalCategories,
		Timestamp:            leaderboarddomain.FormatTimestamp(start),
		Note:                 leaderboarddomain.NoLiveDataNote,
	}
	if successful > 0 {
		meta.Source = leaderboarddomain.SourceLive
		meta.Connected = true
		meta.Note = leaderboarddomain.LiveNote(successful)
	}
	if len(categoryErrors) > 0 {
		meta.CategoryErrors = categoryErrors
	}
	meta.SetResponseTime(s.now().Sub(start))

	return leaderboarddomain.Snapshot{Categories: categories, Metadata: meta}
}

func (s *LeaderboardService) errorSnapshot(ctx context.Context, err error, start time.Time) leaderboarddomain.Snapshot {
	s.logger.ErrorContext(ctx, "Leaderboard aggregation failed, serving fallback",
		attr.ExtractCorrelationID(ctx),
		attr.Error(err),
	)
	snap := leaderboarddomain.FallbackSnapshot(leaderboarddomain.SourceError, err.Error(), start)
	snap.Metadata.SetResponseTime(s.now().Sub(start))
	return snap
}

// fetchCategory queries one store and turns it into at most MaxEntries ranked rows.
func (s *LeaderboardService) fetchCategory(ctx context.Context, category leaderboarddomain.Category) categoryResult {
	ctx, span := s.startSpan(ctx, "fetchCategory")
	defer span.End()

	raw, err := s.client.ListEntries(ctx, category.Store, category.Order.OrderBy(), s.cfg.PageSize)
	if err != nil {
		s.metrics.RecordUpstreamRequest(ctx, string(category.Key), "error")
		s.logger.WarnContext(ctx, "Category query failed",
			attr.Category(string(category.Key)),
			attr.String("store", category.Store),
			attr.Error(err),
		)
		span.RecordError(err)
		return categoryResult{err: err}
	}
	if len(raw) == 0 {
		s.metrics.RecordUpstreamRequest(ctx, string(category.Key), "empty")
		s.logger.InfoContext(ctx, "Category has no entries", attr.Category(string(category.Key)))
		return categoryResult{}
	}
	s.metrics.RecordUpstreamRequest(ctx, string(category.Key), "ok")

	qualified := make([]roblox.DataStoreEntry, 0, len(raw))
	for _, e := range raw {
		if e.Value != nil && category.Qualifies(*e.Value) {
			qualified = append(qualified, e)
		}
	}
	sort.SliceStable(qualified, func(i, j int) bool {
		return category.Order.Less(*qualified[i].Value, *qualified[j].Value)
	})
	if len(qualified) > leaderboarddomain.MaxEntries {
		qualified = qualified[:leaderboarddomain.MaxEntries]
	}

	names := s.resolveUsernames(ctx, qualified)

	entries := make([]leaderboarddomain.Entry, len(qualified))
	for i, e := range qualified {
		value := *e.Value
		entries[i] = leaderboarddomain.Entry{
			Rank:     i + 1,
			Username: names[i],
			Value:    leaderboarddomain.FormatValue(category.Key, &value),
			RawValue: &value,
			PlayerID: e.PlayerID(),
		}
	}
	s.logger.DebugContext(ctx, "Category loaded",
		attr.Category(string(category.Key)),
		attr.Int("fetched", len(raw)),
		attr.Int("ranked", len(entries)),
	)
	return categoryResult{entries: entries}
}

// resolveUsernames looks every player up concurrently. Failed lookups get a placeholder name.
func (s *LeaderboardService) resolveUsernames(ctx context.Context, entries []roblox.DataStoreEntry) []string {
	names := make([]string, len(entries))
	// errgroup only for SetLimit; lookups never fail the group.
	var g errgroup.Group
	g.SetLimit(s.cfg.LookupConcurrency)
	for i, e := range entries {
		g.Go(func() error {
			id := e.PlayerID()
			name, err := s.client.GetUsername(ctx, id)
			if err != nil {
				s.metrics.RecordUsernameLookup(ctx, "fallback")
				s.logger.DebugContext(ctx, "Username lookup failed", attr.String("player_id", id), attr.Error(err))
				names[i] = PlaceholderName(id)
				return nil
			}
			s.metrics.RecordUsernameLookup(ctx, "ok")
			names[i] = name
			return nil
		})
	}
	g.Wait()
	return names
}

// PlaceholderName is shown when a player's display name cannot be resolved.
func PlaceholderName(id string) string {
	if len(id) > 6 {
		id = id[:6]
	}
	return "Player_" + id
}

func errorText(err error) string {
	var statusErr *roblox.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Error()
	}
	return err.Error()
}
