package leaderboardservice

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	leaderboarddomain "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette colours a rendered leaderboard.
type ChartPalette struct {
	Background drawing.Color
	Bar        drawing.Color
	BarStroke  drawing.Color
	Text       drawing.Color
}

// DefaultPalette matches the site's tomato and crust colours.
var DefaultPalette = ChartPalette{
	Background: drawing.ColorFromHex("fff8ef"),
	Bar:        drawing.ColorFromHex("e4572e"),
	BarStroke:  drawing.ColorFromHex("a33a1d"),
	Text:       drawing.ColorFromHex("3b2a1a"),
}

// RenderChart draws the current leaderboard for category as a PNG bar chart.
func (s *LeaderboardService) RenderChart(ctx context.Context, category string) ([]byte, error) {
	ctx, span := s.startSpan(ctx, "RenderChart")
	defer span.End()

	c, ok := leaderboarddomain.CategoryByKey(category)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	snap := s.GetLeaderboards(ctx)
	return GenerateLeaderboardChart(c, snap.Entries(c.Key), DefaultPalette)
}

// GenerateLeaderboardChart produces a PNG bar chart of entries.
func GenerateLeaderboardChart(category leaderboarddomain.Category, entries []leaderboarddomain.Entry, palette ChartPalette) ([]byte, error) {
	if len(entries) == 0 {
		return renderNoDataPlaceholder(palette, "No "+strings.ToLower(category.Label)+" yet")
	}

	bars := make([]chart.Value, len(entries))
	top := 1.0
	for i, e := range entries {
		v := chartValue(category.Key, e)
		top = max(top, v)
		bars[i] = chart.Value{
			Label: fmt.Sprintf("#%d %s", e.Rank, e.Username),
			Value: v,
			Style: chart.Style{
				FillColor:   palette.Bar,
				StrokeColor: palette.BarStroke,
				StrokeWidth: 1,
			},
		}
	}

	graph := chart.BarChart{
		Title:    category.Label,
		Width:    1000,
		Height:   480,
		BarWidth: 60,
		Background: chart.Style{
			Padding:   chart.Box{Top: 40, Bottom: 20},
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		TitleStyle: chart.Style{
			FontColor: palette.Text,
		},
		XAxis: chart.Style{
			FontColor: palette.Text,
			FontSize:  8,
		},
		YAxis: chart.YAxis{
			Name: chartUnit(category.Key),
			// Anchored at zero; BarChart rejects a range with no spread.
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
			Style: chart.Style{
				FontColor: palette.Text,
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render %s chart: %w", category.Key, err)
	}
	return buffer.Bytes(), nil
}

// renderNoDataPlaceholder draws msg centred on a blank canvas. chart.Chart refuses to
// render without a series, so this goes straight to the PNG renderer.
func renderNoDataPlaceholder(palette ChartPalette, msg string) ([]byte, error) {
	const (
		width  = 400
		height = 200
	)

	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}
	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, err
	}

	r.SetFillColor(palette.Background)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	r.SetFont(font)
	r.SetFontColor(palette.Text)
	r.SetFontSize(12.0)
	tb := r.MeasureText(msg)
	r.Text(msg, (width-tb.Width())/2, (height+tb.Height())/2)

	buffer := bytes.NewBuffer([]byte{})
	if err := r.Save(buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func chartUnit(key leaderboarddomain.CategoryKey) string {
	switch key {
	case leaderboarddomain.TopPlaytime:
		return "Minutes"
	case leaderboarddomain.Fastest:
		return "Seconds"
	default:
		return "Count"
	}
}

// chartValue plots playtime in minutes, fastest in seconds and counts as-is.
func chartValue(key leaderboarddomain.CategoryKey, e leaderboarddomain.Entry) float64 {
	switch {
	case e.RawValue != nil:
		raw := *e.RawValue
		switch key {
		case leaderboarddomain.TopPlaytime:
			return raw / 60
		case leaderboarddomain.Fastest:
			if raw < 100 {
				return raw
			}
			return raw / 1000
		}
		return raw
	case !e.Value.IsText():
		return e.Value.Number()
	default:
		return parseDisplayValue(e.Value.String())
	}
}

// parseDisplayValue reads back a formatted duration: minutes for playtime, seconds for run times.
func parseDisplayValue(text string) float64 {
	var a, b int
	switch {
	case strings.Contains(text, "h "):
		if _, err := fmt.Sscanf(text, "%dh %dm", &a, &b); err == nil {
			return float64(a*60 + b)
		}
	case strings.Contains(text, ":"):
		if _, err := fmt.Sscanf(text, "%d:%d", &a, &b); err == nil {
			return float64(a*60 + b)
		}
	case strings.HasSuffix(text, "ms"):
		if f, err := strconv.ParseFloat(strings.TrimSuffix(text, "ms"), 64); err == nil {
			return f / 1000
		}
	case strings.HasSuffix(text, "m"):
		if f, err := strconv.ParseFloat(strings.TrimSuffix(text, "m"), 64); err == nil {
			return f
		}
	case strings.HasSuffix(text, "s"):
		if f, err := strconv.ParseFloat(strings.TrimSuffix(text, "s"), 64); err == nil {
			return f
		}
	}
	return 0
}
