package leaderboardhandlers

import "net/http"

// Handlers is the HTTP surface of the leaderboard module.
type Handlers interface {
	HandleGetLeaderboards(w http.ResponseWriter, r *http.Request)
	HandleChart(w http.ResponseWriter, r *http.Request)
	HandleExport(w http.ResponseWriter, r *http.Request)

	HandleTest(w http.ResponseWriter, r *http.Request)
	HandleStatus(w http.ResponseWriter, r *http.Request)
	HandleDebugDataStore(w http.ResponseWriter, r *http.Request)
	HandleListOrderedStores(w http.ResponseWriter, r *http.Request)
	HandleForceRobloxTest(w http.ResponseWriter, r *http.Request)
	HandleClearCache(w http.ResponseWriter, r *http.Request)
}

var _ Handlers = (*LeaderboardHandlers)(nil)
