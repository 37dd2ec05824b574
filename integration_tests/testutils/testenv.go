package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"log/slog"
	"strings"

	"github.com/Black-And-White-Club/pizza-walk/app/eventbus"
	usermigrations "github.com/Black-And-White-Club/pizza-walk/app/modules/user/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/pizza-walk/config"
	"github.com/Black-And-White-Club/pizza-walk/integration_tests/containers"
	tcnats "github.com/testcontainers/testcontainers-go/modules/nats"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// appTables are emptied between tests.
var appTables = []string{"users"}

// TestEnvironment holds the containers and connections shared by an integration package.
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	PgContainer   *postgres.PostgresContainer
	NatsContainer *tcnats.NATSContainer
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Config        *config.Config
	Logger        *slog.Logger
}

// NewTestEnvironment starts Postgres and NATS, applies the user migrations and connects the event bus.
func NewTestEnvironment() (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(context.Background())
	env := &TestEnvironment{
		Ctx:           ctx,
		CancelContext: cancel,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	pgContainer, pgConnStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to setup postgres container: %w", err)
	}
	env.PgContainer = pgContainer

	natsContainer, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to setup nats container: %w", err)
	}
	env.NatsContainer = natsContainer

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(pgConnStr)))
	env.DB = bun.NewDB(sqldb, pgdialect.New())

	if err := runMigrations(ctx, env.DB); err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	bus, err := eventbus.NewNATSEventBus(natsURL, env.Logger)
	if err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to create EventBus: %w", err)
	}
	env.EventBus = bus

	cfg := config.Default()
	cfg.Postgres.DSN = pgConnStr
	cfg.NATS.URL = natsURL
	env.Config = cfg

	return env, nil
}

func runMigrations(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, usermigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return err
	}
	_, err := migrator.Migrate(ctx)
	return err
}

// ResetDatabase empties every application table.
func (env *TestEnvironment) ResetDatabase(ctx context.Context) error {
	query := fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(appTables, ", "))
	if _, err := env.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate tables %v: %w", appTables, err)
	}
	return nil
}

// Cleanup closes connections and terminates the containers.
func (env *TestEnvironment) Cleanup() {
	log.Println("Cleaning up test environment resources...")
	if env.EventBus != nil {
		if err := env.EventBus.Close(); err != nil {
			log.Printf("Error closing EventBus: %v", err)
		}
	}
	if env.DB != nil {
		_ = env.DB.Close()
	}
	// The setup context may already be cancelled, so terminate with a fresh one.
	if env.NatsContainer != nil {
		if err := env.NatsContainer.Terminate(context.Background()); err != nil {
			log.Printf("Error terminating NATS container: %v", err)
		}
	}
	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(context.Background()); err != nil {
			log.Printf("Error terminating Postgres container: %v", err)
		}
	}
	if env.CancelContext != nil {
		env.CancelContext()
	}
	log.Println("Test environment resources cleaned up.")
}
