package leaderboardresolver

import (
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/domain"
)

type sampleRow struct {
	username string
	value    leaderboarddomain.Value
}

var sampleTable = map[leaderboarddomain.CategoryKey][]sampleRow{
	leaderboarddomain.TopRebirths: {
		{"ProWalkerX", leaderboarddomain.NumberValue(892)},
		{"PizzaMaster", leaderboarddomain.NumberValue(756)},
		{"SpeedDemon", leaderboarddomain.NumberValue(689)},
		{"ChillWalker", leaderboarddomain.NumberValue(567)},
		{"AFKEnthusiast", leaderboarddomain.NumberValue(456)},
	},
	leaderboarddomain.TopPlaytime: {
		{"ChillWalker", leaderboarddomain.TextValue("1245h")},
		{"ProWalkerX", leaderboarddomain.TextValue("987h")},
		{"PizzaMaster", leaderboarddomain.TextValue("856h")},
		{"SpeedDemon", leaderboarddomain.TextValue("789h")},
		{"AFKEnthusiast", leaderboarddomain.TextValue("654h")},
	},
	leaderboarddomain.TopCompletions: {
		{"ProWalkerX", leaderboarddomain.NumberValue(1256)},
		{"SpeedDemon", leaderboarddomain.NumberValue(987)},
		{"PizzaMaster", leaderboarddomain.NumberValue(856)},
		{"ChillWalker", leaderboarddomain.NumberValue(745)},
		{"CompletionsKing", leaderboarddomain.NumberValue(632)},
	},
	leaderboarddomain.Fastest: {
		{"SpeedDemon", leaderboarddomain.TextValue("01:45")},
		{"ProWalkerX", leaderboarddomain.TextValue("01:52")},
		{"QuickFinish", leaderboarddomain.TextValue("01:58")},
		{"PizzaMaster", leaderboarddomain.TextValue("02:05")},
		{"FastWalker", leaderboarddomain.TextValue("02:12")},
	},
}

// SampleSnapshot is the hardcoded data shown when neither the server nor the cache can answer.
func SampleSnapshot(now time.Time) leaderboarddomain.Snapshot {
	categories := make(map[leaderboarddomain.CategoryKey][]leaderboarddomain.Entry, len(sampleTable))
	for key, rows := range sampleTable {
		entries := make([]leaderboarddomain.Entry, len(rows))
		for i, r := range rows {
			entries[i] = leaderboarddomain.Entry{Rank: i + 1, Username: r.username, Value: r.value}
		}
		categories[key] = entries
	}
	return leaderboarddomain.Snapshot{
		Categories: categories,
		Metadata: leaderboarddomain.Metadata{
			Source:          leaderboarddomain.SourceFallback,
			TotalCategories: leaderboarddomain.TotalCategories,
			Timestamp:       leaderboarddomain.FormatTimestamp(now),
		},
	}
}
