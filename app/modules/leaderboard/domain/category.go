package leaderboarddomain

import "strings"

// MaxEntries is the number of ranked entries kept per category.
const MaxEntries = 10

// CategoryKey is the wire name of a leaderboard category inside a snapshot.
type CategoryKey string

const (
	TopRebirths    CategoryKey = "topRebirths"
	Fastest        CategoryKey = "fastest"
	TopPlaytime    CategoryKey = "topPlaytime"
	TopCompletions CategoryKey = "topCompletions"
)

// SortOrder is the direction an ordered data store is queried in.
type SortOrder int

const (
	Descending SortOrder = iota
	Ascending
)

// OrderBy renders the order for the upstream orderBy query parameter.
func (o SortOrder) OrderBy() string {
	if o == Ascending {
		return "value"
	}
	return "value desc"
}

// Less reports whether a ranks ahead of b.
func (o SortOrder) Less(a, b float64) bool {
	if o == Ascending {
		return a < b
	}
	return a > b
}

// Category describes one ranking and where it lives upstream.
type Category struct {
	Key   CategoryKey
	Name  string
	Label string
	Store string
	Order SortOrder
	// MinValue is exclusive: entries must be strictly greater to be ranked.
	MinValue float64
}

// Categories lists every leaderboard in query order.
var Categories = []Category{
	{Key: TopRebirths, Name: "rebirths", Label: "Top Rebirths", Store: "RebirthLeaderboard_A", Order: Descending, MinValue: 1},
	{Key: Fastest, Name: "fastest", Label: "Fastest Times", Store: "FastestTimeLeaderboard_A", Order: Ascending, MinValue: 0},
	{Key: TopPlaytime, Name: "playtime", Label: "Most Playtime", Store: "PlayTime_A", Order: Descending, MinValue: 60},
	{Key: TopCompletions, Name: "completions", Label: "Most Completions", Store: "Completions_A", Order: Descending, MinValue: 1},
}

// TotalCategories is reported in every snapshot's metadata.
var TotalCategories = len(Categories)

// CategoryByKey finds a category by wire key, short name or store name, ignoring case.
func CategoryByKey(key string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(key, string(c.Key)) || strings.EqualFold(key, c.Name) || strings.EqualFold(key, c.Store) {
			return c, true
		}
	}
	return Category{}, false
}

// Qualifies reports whether raw clears the category's minimum.
func (c Category) Qualifies(raw float64) bool {
	return raw > c.MinValue
}
