package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	userservice "github.com/Black-And-White-Club/pizza-walk/app/modules/user/application"
	userdb "github.com/Black-And-White-Club/pizza-walk/app/modules/user/infrastructure/repositories"
	usermigrations "github.com/Black-And-White-Club/pizza-walk/app/modules/user/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/pizza-walk/app/observability"
	"github.com/Black-And-White-Club/pizza-walk/config"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

func main() {
	// Load configuration for database connection ONLY
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Postgres.DSN == "" {
		log.Fatal("postgres dsn is not configured (set DATABASE_URL or postgres.dsn)")
	}

	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(pgdb, pgdialect.New())
	defer db.Close()

	migrators := map[string]*migrate.Migrator{
		"user": migrate.NewMigrator(db, usermigrations.Migrations),
	}

	cliApp := &cli.App{
		Name:  "bun",
		Usage: "pizza walk database tooling",
		Commands: []*cli.Command{
			newMultiModuleDBCommand(migrators),
			newRiverCommand(cfg.Postgres.DSN),
			newSeedCommand(db),
		},
	}

	if err := cliApp.Run(append([]string{os.Args[0]}, flag.Args()...)); err != nil {
		log.Fatal(err)
	}
}

func newMultiModuleDBCommand(migrators map[string]*migrate.Migrator) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					for moduleName, migrator := range migrators {
						fmt.Printf("Initializing migrations for module: %s\n", moduleName)
						if err := migrator.Init(c.Context); err != nil {
							return fmt.Errorf("init migrations for module %s: %w", moduleName, err)
						}
					}
					return nil
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					for moduleName, migrator := range migrators {
						fmt.Printf("Running migrations for module: %s\n", moduleName)
						group, err := migrator.Migrate(c.Context)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Printf("No new migrations to run for module: %s\n", moduleName)
						} else {
							fmt.Printf("Migrated module: %s to %s\n", moduleName, group)
						}
					}
					return nil
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: func(c *cli.Context) error {
					for moduleName, migrator := range migrators {
						fmt.Printf("Rolling back migrations for module: %s\n", moduleName)
						group, err := migrator.Rollback(c.Context)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Printf("No groups to roll back for module: %s\n", moduleName)
						} else {
							fmt.Printf("Rolled back module: %s to %s\n", moduleName, group)
						}
					}
					return nil
				},
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					moduleName := c.Args().First()
					migrator, ok := migrators[moduleName]
					if !ok {
						return fmt.Errorf("invalid module name: %s", moduleName)
					}

					name := strings.Join(c.Args().Tail(), "_")
					mf, err := migrator.CreateGoMigration(c.Context, name)
					if err != nil {
						return err
					}
					fmt.Printf("Created migration for module %s: %s (%s)\n", moduleName, mf.Name, mf.Path)
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					for moduleName, migrator := range migrators {
						ms, err := migrator.MigrationsWithStatus(c.Context)
						if err != nil {
							return err
						}
						fmt.Printf("Migrations for module: %s\n", moduleName)
						fmt.Printf("  %s\n", ms)
						fmt.Printf("  Applied: %s\n", ms.Applied())
						fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
					}
					return nil
				},
			},
		},
	}
}

// newRiverCommand applies the job queue schema used by the leaderboard cache warmer.
func newRiverCommand(dsn string) *cli.Command {
	return &cli.Command{
		Name:  "river-migrate",
		Usage: "apply river job queue migrations",
		Action: func(c *cli.Context) error {
			pool, err := pgxpool.New(c.Context, dsn)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer pool.Close()

			migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
			if err != nil {
				return fmt.Errorf("create river migrator: %w", err)
			}
			res, err := migrator.Migrate(c.Context, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{})
			if err != nil {
				return fmt.Errorf("river migrate: %w", err)
			}
			if len(res.Versions) == 0 {
				fmt.Println("River schema already up to date")
			}
			for _, v := range res.Versions {
				fmt.Printf("Applied river migration %d\n", v.Version)
			}
			return nil
		},
	}
}

// newSeedCommand registers fake accounts through the user service so they pass normal validation.
func newSeedCommand(db *bun.DB) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "create fake user accounts",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "count", Value: 10, Usage: "number of accounts"},
			&cli.Uint64Flag{Name: "seed", Value: 42, Usage: "random seed"},
		},
		Action: func(c *cli.Context) error {
			return seedUsers(c.Context, db, c.Int("count"), c.Uint64("seed"))
		},
	}
}

func seedUsers(ctx context.Context, db *bun.DB, count int, seed uint64) error {
	obs := observability.NewNoop()
	service := userservice.NewUserService(
		userdb.NewRepository(db),
		nil,
		obs.Provider.Logger,
		obs.Registry.UserMetrics,
		obs.Registry.Tracer,
		db,
	)

	faker := gofakeit.New(seed)
	created := 0
	for i := 0; i < count; i++ {
		req := userservice.CreateUserRequest{
			Name:     faker.Username(),
			Email:    faker.Email(),
			Password: faker.Password(true, true, true, false, false, 12),
		}
		result, err := service.CreateUser(ctx, req)
		if err != nil {
			return fmt.Errorf("seed user %d: %w", i, err)
		}
		if result.IsFailure() {
			fmt.Fprintf(os.Stderr, "Skipped %s: %v\n", req.Name, *result.Failure)
			continue
		}
		created++
		fmt.Printf("Created %s <%s> password=%s\n", req.Name, req.Email, req.Password)
	}
	fmt.Printf("Seeded %d of %d users\n", created, count)
	return nil
}
