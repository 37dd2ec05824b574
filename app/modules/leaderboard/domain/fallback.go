package leaderboarddomain

import (
	"fmt"
	"time"
)

type fallbackRow struct {
	username string
	value    Value
}

var fallbackTable = map[CategoryKey][]fallbackRow{
	TopRebirths: {
		{"ProPlayer1", NumberValue(83)}, {"GameMaster", NumberValue(76)}, {"WalkWarrior", NumberValue(72)},
		{"SpeedRunner", NumberValue(68)}, {"CasualGamer", NumberValue(65)}, {"PizzaLover", NumberValue(61)},
		{"Walker123", NumberValue(58)}, {"ChillPlayer", NumberValue(55)}, {"NewbiePro", NumberValue(52)},
		{"JustWalking", NumberValue(49)},
	},
	TopPlaytime: {
		{"TimeMaster", TextValue("325m")}, {"Dedicated", TextValue("298m")}, {"AlwaysOn", TextValue("276m")},
		{"Grinder", TextValue("254m")}, {"Persistent", TextValue("231m")}, {"Regular", TextValue("215m")},
		{"Frequent", TextValue("198m")}, {"Occasional", TextValue("182m")}, {"Casual", TextValue("167m")},
		{"Newcomer", TextValue("152m")},
	},
	TopCompletions: {
		{"Completionist", NumberValue(142)}, {"Finisher", NumberValue(128)}, {"Achiever", NumberValue(115)},
		{"Perfectionist", NumberValue(103)}, {"Master", NumberValue(97)}, {"Expert", NumberValue(86)},
		{"Skilled", NumberValue(78)}, {"Regular", NumberValue(71)}, {"Amateur", NumberValue(64)},
		{"Beginner", NumberValue(58)},
	},
	Fastest: {
		{"SpeedDemon", TextValue("1:24")}, {"QuickSilver", TextValue("1:31")}, {"Flash", TextValue("1:37")},
		{"Sonic", TextValue("1:42")}, {"Rapid", TextValue("1:48")}, {"Swift", TextValue("1:53")},
		{"Fast", TextValue("1:59")}, {"Quick", TextValue("2:04")}, {"Brisk", TextValue("2:11")},
		{"Speedy", TextValue("2:17")},
	},
}

// FallbackEntries returns a fresh copy of the static rows for key.
func FallbackEntries(key CategoryKey) []Entry {
	rows := fallbackTable[key]
	out := make([]Entry, len(rows))
	for i, r := range rows {
		out[i] = Entry{Rank: i + 1, Username: r.username, Value: r.value}
	}
	return out
}

// FallbackCategories returns the static rows for every category.
func FallbackCategories() map[CategoryKey][]Entry {
	out := make(map[CategoryKey][]Entry, len(Categories))
	for _, c := range Categories {
		out[c.Key] = FallbackEntries(c.Key)
	}
	return out
}

// FallbackSnapshot builds a static snapshot tagged with source and an optional error.
func FallbackSnapshot(source Source, errMsg string, now time.Time) Snapshot {
	meta := Metadata{
		Source:          source,
		TotalCategories: TotalCategories,
		Timestamp:       FormatTimestamp(now),
		Error:           errMsg,
	}
	meta.SetResponseTime(0)
	if source == SourceFallback {
		meta.Note = NoLiveDataNote
	}
	return Snapshot{Categories: FallbackCategories(), Metadata: meta}
}

// NoLiveDataNote is reported when every category query came back empty.
const NoLiveDataNote = "❌ No ordered data found, using fallback"

// LiveNote summarises how many categories loaded.
func LiveNote(successful int) string {
	return fmt.Sprintf("✅ %d/%d ordered leaderboards loaded!", successful, TotalCategories)
}

// FormatTimestamp renders t the way snapshot metadata carries it.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
