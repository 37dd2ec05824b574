package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/domain"
	leaderboardresolver "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/resolver"
	"github.com/Black-And-White-Club/pizza-walk/app/observability"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load()

	cliApp := &cli.App{
		Name:  "leaderboard",
		Usage: "read Pizza Walk leaderboards through the local snapshot cache",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Value:   "http://localhost:3001",
				Usage:   "leaderboard API base URL",
				EnvVars: []string{"PIZZA_WALK_SERVER"},
			},
			&cli.StringFlag{
				Name:  "cache-file",
				Value: defaultCacheFile(),
				Usage: "where the snapshot cache is kept",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 15 * time.Second,
				Usage: "request timeout",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print the leaderboards, using the cache while it is fresh",
				Action: func(c *cli.Context) error {
					state := newResolver(c).Load(c.Context, false)
					return render(c.App.Writer, state)
				},
			},
			{
				Name:  "refresh",
				Usage: "drop the cache and fetch again",
				Action: func(c *cli.Context) error {
					state := newResolver(c).Refresh(c.Context)
					return render(c.App.Writer, state)
				},
			},
			{
				Name:  "test-connection",
				Usage: "probe the server, then refresh",
				Action: func(c *cli.Context) error {
					state, err := newResolver(c).TestConnection(c.Context)
					if renderErr := render(c.App.Writer, state); renderErr != nil {
						return renderErr
					}
					if err != nil {
						return cli.Exit(err.Error(), 1)
					}
					fmt.Fprintln(c.App.Writer, "Server is reachable")
					return nil
				},
			},
			{
				Name:  "clear",
				Usage: "remove the cached snapshot",
				Action: func(c *cli.Context) error {
					newResolver(c).ClearCache(c.Context)
					fmt.Fprintln(c.App.Writer, "Cache cleared")
					return nil
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func defaultCacheFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "pizza-walk", "leaderboard-cache.json")
}

func newResolver(c *cli.Context) *leaderboardresolver.Resolver {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: observability.ParseLevel(c.String("log-level")),
	}))
	return leaderboardresolver.NewResolver(
		leaderboardresolver.NewHTTPSource(c.String("server"), c.Duration("timeout")),
		leaderboardresolver.NewFileStorage(c.String("cache-file")),
		logger,
	)
}

// render prints one table per category followed by where the data came from.
func render(w io.Writer, state leaderboardresolver.State) error {
	if state.Snapshot == nil {
		return cli.Exit(fmt.Sprintf("No leaderboard data: %s", state.Error), 1)
	}
	snap := state.Snapshot

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, category := range leaderboarddomain.Categories {
		fmt.Fprintf(tw, "%s\n", category.Label)
		entries := snap.Entries(category.Key)
		if len(entries) == 0 {
			fmt.Fprintf(tw, "  (no entries)\n")
		}
		for _, e := range entries {
			fmt.Fprintf(tw, "  %d\t%s\t%s\n", e.Rank, e.Username, e.Value)
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	meta := snap.Metadata
	origin := "server"
	switch {
	case state.Stale:
		origin = "stale cache"
	case state.FromCache:
		origin = "cache"
	}
	fmt.Fprintf(w, "Source: %s (%s)", meta.Source, origin)
	if !state.CachedAt.IsZero() {
		fmt.Fprintf(w, ", cached %s", state.CachedAt.Local().Format(time.DateTime))
	}
	fmt.Fprintln(w)
	if meta.Note != "" {
		fmt.Fprintln(w, meta.Note)
	}
	if state.Error != "" {
		fmt.Fprintf(w, "Warning: %s\n", state.Error)
	}
	return nil
}
