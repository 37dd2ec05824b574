package leaderboardqueue

// WarmCacheJob re-aggregates the leaderboards so the shared cache stays warm.
type WarmCacheJob struct{}

// Kind returns the job type identifier for River
func (WarmCacheJob) Kind() string { return "leaderboard_warm_cache" }
