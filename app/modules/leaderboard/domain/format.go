package leaderboarddomain

import (
	"fmt"
	"math"
	"strconv"
)

// FormatValue turns a raw store value into what the leaderboard displays.
// A nil raw value yields the category's zero display.
func FormatValue(key CategoryKey, raw *float64) Value {
	switch key {
	case TopPlaytime:
		if raw == nil {
			return TextValue("0m")
		}
		return TextValue(formatPlaytime(*raw))
	case Fastest:
		if raw == nil {
			return TextValue("0:00")
		}
		return TextValue(formatFastest(*raw))
	default:
		if raw == nil {
			return NumberValue(0)
		}
		return NumberValue(*raw)
	}
}

// formatPlaytime renders seconds as "{h}h {m}m", or "{m}m" under an hour.
func formatPlaytime(seconds float64) string {
	minutes := int64(math.Floor(seconds / 60))
	hours := int64(math.Floor(float64(minutes) / 60))
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}

// formatFastest renders a run time. Values under 100 are taken as seconds,
// anything else as milliseconds. The hundredths are always read from the raw value.
func formatFastest(raw float64) string {
	total := raw
	if raw >= 100 {
		total = math.Floor(raw / 1000)
	}
	minutes := int64(math.Floor(total / 60))
	seconds := int64(math.Floor(math.Mod(total, 60)))
	hundredths := int64(math.Floor(math.Mod(raw, 1000) / 10))

	switch {
	case minutes > 0:
		return fmt.Sprintf("%d:%02d", minutes, seconds)
	case seconds > 0:
		return fmt.Sprintf("%d.%02ds", seconds, hundredths)
	default:
		return strconv.FormatFloat(raw, 'f', -1, 64) + "ms"
	}
}
